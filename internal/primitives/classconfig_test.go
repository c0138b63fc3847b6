package primitives

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *ClassConfig
		wantErr bool
	}{
		{
			name:    "minimal valid",
			config:  &ClassConfig{Name: "Unit"},
			wantErr: false,
		},
		{
			name: "full valid",
			config: &ClassConfig{
				Name:       "Unit",
				Mixins:     []string{"model", "events"},
				Predicates: map[string]string{"isAlive": "life > 0"},
				Defaults:   map[string]any{"life": 100},
			},
			wantErr: false,
		},
		{
			name:    "missing name",
			config:  &ClassConfig{Mixins: []string{"model"}},
			wantErr: true,
		},
		{
			name:    "empty mixin",
			config:  &ClassConfig{Name: "Unit", Mixins: []string{"model", " "}},
			wantErr: true,
		},
		{
			name:    "duplicate mixin",
			config:  &ClassConfig{Name: "Unit", Mixins: []string{"events", "events"}},
			wantErr: true,
		},
		{
			name:    "empty predicate expression",
			config:  &ClassConfig{Name: "Unit", Predicates: map[string]string{"isAlive": ""}},
			wantErr: true,
		},
		{
			name:    "empty default name",
			config:  &ClassConfig{Name: "Unit", Defaults: map[string]any{"": 1}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestComputeVersion(t *testing.T) {
	explicit := &ClassConfig{Name: "Unit", Version: "v2"}
	assert.Equal(t, "v2", ComputeVersion(explicit))

	a := &ClassConfig{Name: "Unit", Mixins: []string{"model"}, Defaults: map[string]any{"life": 1, "name": "x"}}
	b := &ClassConfig{Name: "Unit", Mixins: []string{"model"}, Defaults: map[string]any{"name": "x", "life": 1}}
	c := &ClassConfig{Name: "Unit", Mixins: []string{"model", "events"}}

	va := ComputeVersion(a)
	assert.Len(t, va, 16)
	assert.Equal(t, va, ComputeVersion(b))
	assert.NotEqual(t, va, ComputeVersion(c))
}
