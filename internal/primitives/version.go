package primitives

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// ComputeVersion computes a deterministic version for a ClassConfig.
// Priority: user-provided config.Version, else SHA256(config JSON)[:8].
func ComputeVersion(config *ClassConfig) string {
	if config.Version != "" {
		return config.Version
	}

	// encoding/json sorts map keys, so equal configs hash equally.
	data, err := json.Marshal(config)
	if err != nil {
		// Defaults may hold values JSON cannot encode.
		data = []byte(fmt.Sprintf("%#v", *config))
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash[:8])
}
