package micromodel

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var pkgLogger atomic.Pointer[zerolog.Logger]

func init() {
	SetLogger(zerolog.Nop())
}

// SetLogger installs the structured logger used by the package.
// The default discards everything.
func SetLogger(l zerolog.Logger) { pkgLogger.Store(&l) }

func logger() *zerolog.Logger { return pkgLogger.Load() }
