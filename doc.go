// Package micromodel provides observable attribute models composed from
// functional mixins.
//
// A Model is a bag of named attributes. Set applies a patch and, when the
// model was composed with the event capability and any attribute changed,
// emits a "change" event synchronously to every registered listener before
// returning.
//
// Classes are built by applying capability mixins in order, followed by a
// table of custom methods:
//
//	Unit := micromodel.MustCompose("Unit",
//		micromodel.WithModel,
//		micromodel.WithEventEmitter,
//		micromodel.Methods{
//			"isAlive": micromodel.Predicate(func(m *micromodel.Model) bool {
//				life, _ := m.Get("life").(int)
//				return life > 0
//			}),
//		},
//	)
//
//	unit, _ := Unit.New(micromodel.Attributes{"name": "Probe", "life": 80})
//	unit.AddListener(micromodel.EventChange, micromodel.ChangeListener(func(m *micromodel.Model) error {
//		fmt.Println("changed:", m.Changed())
//		return nil
//	}))
//	unit.Set(micromodel.Attributes{"life": 0})
//
// # Override order
//
// Mixins are applied in the order given. A later mixin's method replaces an
// earlier one of the same name, and entries of a Methods table replace every
// mixin method. Model.Call dispatches through this merged table.
//
// # Concurrency
//
// Every operation runs to completion on the calling goroutine. Attribute and
// listener maps are lock-protected, and listeners run outside those locks, so
// a listener may call Set or AddListener on the model that notified it.
package micromodel
