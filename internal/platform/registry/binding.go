package registry

import "fmt"

// Binding is a single registration step executed synchronously during
// startup. Bindings are applied in declared order, so a Binding built with
// Provide may resolve anything bound before it.
type Binding struct {
	Capability string
	bind       func(*Registry) error
}

// Value returns a Binding that registers an already-constructed instance.
func Value[T any](capability string, instance T) Binding {
	return Binding{
		Capability: capability,
		bind: func(r *Registry) error {
			return Register(r, capability, instance)
		},
	}
}

// Provide returns a Binding that builds its instance from earlier bindings
// at apply time and registers the result. A build error aborts the binding.
func Provide[T any](capability string, build func(*Registry) (T, error)) Binding {
	return Binding{
		Capability: capability,
		bind: func(r *Registry) error {
			instance, err := build(r)
			if err != nil {
				return fmt.Errorf("building capability %q: %w", capability, err)
			}
			return Register(r, capability, instance)
		},
	}
}

// Apply runs a single binding against the registry.
func (r *Registry) Apply(b Binding) error {
	if b.bind == nil {
		return fmt.Errorf("capability %q: binding has no registration step", b.Capability)
	}
	return b.bind(r)
}
