package depot

type factory struct{}

// Factory builds registries and worlds
var Factory factory

// NewRegistry creates a component registry accepting up to max component types
func (f factory) NewRegistry(max int) (*Registry, error) {
	return newRegistry(max)
}

// NewWorld creates an empty world using reg for component ids
// A nil reg gets a fresh registry sized by Config.MaxComponents.
func (f factory) NewWorld(reg *Registry) *World {
	if reg == nil {
		created, err := newRegistry(Config.maxComponents)
		if err != nil {
			// unreachable, Config.SetMaxComponents validates
			panic(err)
		}
		reg = created
	}
	return newWorld(reg)
}

// NewView selects the archetypes of w carrying every one of types
func (f factory) NewView(w *World, types ...ComponentType) *View {
	return NewView(w, types...)
}
