package production

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitDescriptor() Descriptor {
	return Descriptor{
		Name: "Unit",
		Capabilities: []CapabilityInfo{
			{Name: "model", Methods: []string{"get", "set"}},
			{Name: "events", Methods: []string{"addListener", "emit"}},
		},
		Methods: []MethodInfo{
			{Name: "addListener", Source: "events"},
			{Name: "get", Source: "model"},
			{Name: "isAlive", Source: MethodSource},
			{Name: "set", Source: MethodSource, Overridden: []string{"model"}},
		},
	}
}

func TestExportDOT(t *testing.T) {
	v := &DefaultVisualizer{}
	dot := v.ExportDOT(unitDescriptor())

	assert.True(t, strings.HasPrefix(dot, "digraph Class {"))
	assert.True(t, strings.HasSuffix(dot, "}\n"))
	assert.Contains(t, dot, `"Unit" -> "mixin:model" [label="1"];`)
	assert.Contains(t, dot, `"mixin:model" -> "mixin:events" [label="2"];`)
	assert.Contains(t, dot, `"Unit" -> "method:isAlive" [style=dashed];`)
	assert.Contains(t, dot, `"mixin:events" -> "method:addListener" [style=dashed];`)
	assert.Contains(t, dot, `"method:set" [label="set()" shape=plaintext style=filled fillcolor=orange];`)
}

func TestExportJSON(t *testing.T) {
	v := &DefaultVisualizer{}
	data, err := v.ExportJSON(unitDescriptor())
	require.NoError(t, err)

	var got Descriptor
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "Unit", got.Name)
	assert.Len(t, got.Capabilities, 2)
	assert.Equal(t, []string{"model"}, got.Methods[3].Overridden)
}
