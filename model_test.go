package micromodel_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/micromodel"
	"github.com/comalice/micromodel/testutil"
)

var observable = micromodel.MustCompose("Observable", micromodel.WithModel, micromodel.WithEventEmitter)

func newObservable(t *testing.T, attrs micromodel.Attributes) *micromodel.Model {
	t.Helper()
	m, err := observable.New(attrs)
	require.NoError(t, err)
	return m
}

func TestModelBasicUsage(t *testing.T) {
	unit := micromodel.NewModel(micromodel.Attributes{"name": "Probe"})
	assert.Equal(t, "Probe", unit.Get("name"))

	changed, err := unit.Set(micromodel.Attributes{"name": "SCV"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "SCV", unit.Get("name"))
}

func TestModelInitialAttributesRoundTrip(t *testing.T) {
	initial := micromodel.Attributes{
		"name":  "Probe",
		"life":  80,
		"ratio": 0.5,
		"tags":  []string{"worker"},
		"none":  nil,
	}
	m := micromodel.NewModel(initial)

	for k, v := range initial {
		assert.Equal(t, v, m.Get(k), k)
		assert.True(t, m.Has(k), k)
	}
	assert.Equal(t, []string{"life", "name", "none", "ratio", "tags"}, m.Keys())
}

func TestModelInitialAttributesAreCopied(t *testing.T) {
	initial := micromodel.Attributes{"life": 80}
	m := micromodel.NewModel(initial)

	initial["life"] = 1
	assert.Equal(t, 80, m.Get("life"))

	snap := m.Attributes()
	snap["life"] = 2
	assert.Equal(t, 80, m.Get("life"))
}

func TestModelGetMissing(t *testing.T) {
	m := micromodel.NewModel(nil)

	assert.Nil(t, m.Get("missing"))
	_, ok := m.Lookup("missing")
	assert.False(t, ok)
	assert.False(t, m.Has("missing"))
	assert.Empty(t, m.Keys())
}

func TestModelSetChangedFlag(t *testing.T) {
	tests := []struct {
		name    string
		patch   micromodel.Attributes
		changed bool
	}{
		{"differing value", micromodel.Attributes{"life": 0}, true},
		{"identical value", micromodel.Attributes{"life": 80}, false},
		{"identical patch of several keys", micromodel.Attributes{"life": 80, "name": "Probe"}, false},
		{"one of several differs", micromodel.Attributes{"life": 80, "name": "SCV"}, true},
		{"new key", micromodel.Attributes{"armor": 1}, true},
		{"new key set to nil", micromodel.Attributes{"target": nil}, true},
		{"empty patch", micromodel.Attributes{}, false},
		{"nil patch", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newObservable(t, micromodel.Attributes{"name": "Probe", "life": 80})
			var r testutil.Recorder
			_, err := r.Attach(m, micromodel.EventChange)
			require.NoError(t, err)

			changed, err := m.Set(tt.patch)
			require.NoError(t, err)
			assert.Equal(t, tt.changed, changed)

			if tt.changed {
				assert.Equal(t, 1, r.Len())
			} else {
				assert.Zero(t, r.Len(), "unchanged set must not emit")
			}
			for k, v := range tt.patch {
				assert.Equal(t, v, m.Get(k))
			}
		})
	}
}

func TestModelChangeListenerSeesCommittedPatch(t *testing.T) {
	m := newObservable(t, micromodel.Attributes{"x": 0, "y": 0})

	var seen micromodel.Attributes
	calls := 0
	_, err := m.AddListener(micromodel.EventChange, micromodel.ChangeListener(func(got *micromodel.Model) error {
		calls++
		assert.Same(t, m, got)
		seen = got.Attributes()
		return nil
	}))
	require.NoError(t, err)

	changed, err := m.Set(micromodel.Attributes{"x": 1, "y": 2})
	require.NoError(t, err)
	require.True(t, changed)

	assert.Equal(t, 1, calls, "listener runs exactly once and before Set returns")
	assert.Equal(t, micromodel.Attributes{"x": 1, "y": 2}, seen)
	assert.Equal(t, []string{"x", "y"}, m.Changed())
}

func TestModelSetWithoutEventsDoesNotEmit(t *testing.T) {
	m := micromodel.NewModel(micromodel.Attributes{"life": 80})

	changed, err := m.Set(micromodel.Attributes{"life": 0})
	require.NoError(t, err)
	assert.True(t, changed)

	_, ok := m.Events()
	assert.False(t, ok)
	_, err = m.AddListener(micromodel.EventChange, func(...any) error { return nil })
	assert.ErrorIs(t, err, micromodel.ErrNoCapability)
	_, err = m.RemoveListener(micromodel.EventChange, 1)
	assert.ErrorIs(t, err, micromodel.ErrNoCapability)
	assert.ErrorIs(t, m.Emit("anything"), micromodel.ErrNoCapability)
}

func TestModelListenerErrorPropagates(t *testing.T) {
	m := newObservable(t, micromodel.Attributes{"life": 80})
	boom := errors.New("boom")

	first := testutil.Recorder{Err: boom}
	var second testutil.Recorder
	_, err := first.Attach(m, micromodel.EventChange)
	require.NoError(t, err)
	_, err = second.Attach(m, micromodel.EventChange)
	require.NoError(t, err)

	changed, err := m.Set(micromodel.Attributes{"life": 0})
	assert.True(t, changed)
	require.ErrorIs(t, err, boom)

	var de *micromodel.ListenerDispatchError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, micromodel.EventChange, de.Event)
	assert.Zero(t, de.Index)

	assert.Zero(t, second.Len(), "dispatch stops at the failing listener")
	assert.Equal(t, 0, m.Get("life"), "patch stays applied")
}

func TestModelRemoveListener(t *testing.T) {
	m := newObservable(t, micromodel.Attributes{"life": 80})
	var r testutil.Recorder

	id, err := r.Attach(m, micromodel.EventChange)
	require.NoError(t, err)

	removed, err := m.RemoveListener(micromodel.EventChange, id)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = m.RemoveListener(micromodel.EventChange, id)
	require.NoError(t, err)
	assert.False(t, removed, "second removal is a no-op")

	_, err = m.Set(micromodel.Attributes{"life": 0})
	require.NoError(t, err)
	assert.Zero(t, r.Len())
}

func TestModelCustomEvents(t *testing.T) {
	m := newObservable(t, nil)
	var r testutil.Recorder
	_, err := r.Attach(m, "attack")
	require.NoError(t, err)

	require.NoError(t, m.Emit("attack", "zergling", 5))
	require.NoError(t, m.Emit("retreat"))

	calls := r.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []any{"zergling", 5}, calls[0].Args)

	em, ok := m.Events()
	require.True(t, ok)
	assert.Equal(t, []string{"attack"}, em.EventNames())
}

func TestModelListenerMaySetReentrantly(t *testing.T) {
	m := newObservable(t, micromodel.Attributes{"life": 10, "dead": false})

	_, err := m.AddListener(micromodel.EventChange, micromodel.ChangeListener(func(got *micromodel.Model) error {
		life, _ := got.Get("life").(int)
		_, err := got.Set(micromodel.Attributes{"dead": life <= 0})
		return err
	}))
	require.NoError(t, err)

	_, err = m.Set(micromodel.Attributes{"life": 0})
	require.NoError(t, err)
	assert.Equal(t, true, m.Get("dead"))
}

func TestModelChangedIsScopedToEmission(t *testing.T) {
	m := newObservable(t, micromodel.Attributes{"life": 10, "dead": false})

	var inner, outer [][]string
	_, err := m.AddListener(micromodel.EventChange, micromodel.ChangeListener(func(got *micromodel.Model) error {
		inner = append(inner, got.Changed())
		life, _ := got.Get("life").(int)
		_, err := got.Set(micromodel.Attributes{"dead": life <= 0})
		return err
	}))
	require.NoError(t, err)
	_, err = m.AddListener(micromodel.EventChange, micromodel.ChangeListener(func(got *micromodel.Model) error {
		outer = append(outer, got.Changed())
		return nil
	}))
	require.NoError(t, err)

	_, err = m.Set(micromodel.Attributes{"life": 0})
	require.NoError(t, err)

	// The nested Set for "dead" dispatches fully before the outer emission
	// reaches the second listener.
	assert.Equal(t, [][]string{{"life"}, {"dead"}}, inner)
	assert.Equal(t, [][]string{{"dead"}, {"life"}}, outer)
	assert.Equal(t, []string{"dead"}, m.Changed())
}

func TestModelIdentity(t *testing.T) {
	a := micromodel.NewModel(nil)
	b := micromodel.NewModel(nil)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, "Model("+a.ID()+")", a.String())
	assert.Equal(t, "Model", a.Class().Name())
	assert.True(t, a.Is(micromodel.CapabilityModel))
	assert.False(t, a.Is(micromodel.CapabilityEvents))
}

func TestChangeListenerBadArguments(t *testing.T) {
	l := micromodel.ChangeListener(func(*micromodel.Model) error { return nil })

	assert.ErrorIs(t, l(), micromodel.ErrBadArgument)
	assert.ErrorIs(t, l("not a model"), micromodel.ErrBadArgument)
}

func TestModelSliceValuesCompareStructurally(t *testing.T) {
	m := newObservable(t, micromodel.Attributes{"path": []int{1, 2}})

	changed, err := m.Set(micromodel.Attributes{"path": []int{1, 2}})
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = m.Set(micromodel.Attributes{"path": []int{1, 2, 3}})
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestModelSameCallbackIsNotAChange(t *testing.T) {
	onDeath := func(*micromodel.Model) {}
	m := newObservable(t, micromodel.Attributes{"onDeath": onDeath})
	rec := &testutil.Recorder{}
	_, err := rec.Attach(m, micromodel.EventChange)
	require.NoError(t, err)

	changed, err := m.Set(micromodel.Attributes{"onDeath": onDeath})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 0, rec.Len())
}
