package fsmx

// Builder assembles a Config fluently. States keep the order of their first
// State call.
type Builder struct {
	config *Config
}

// StateBuilder adds transitions to one state.
type StateBuilder struct {
	b   *Builder
	def *StateDefinition
}

// NewBuilder starts a Config with the given initial state name.
func NewBuilder(initial string) *Builder {
	return &Builder{config: &Config{Initial: initial}}
}

// State creates a state, or reopens it if it already exists.
func (b *Builder) State(name string) *StateBuilder {
	def, ok := b.config.States.Get(name)
	if !ok {
		def = &StateDefinition{}
		b.config.States.Set(name, def)
	}
	return &StateBuilder{b: b, def: def}
}

// On maps event to target. A later call for the same event overwrites it.
func (sb *StateBuilder) On(event, target string) *StateBuilder {
	if sb.def.Transitions == nil {
		sb.def.Transitions = make(map[string]string)
	}
	sb.def.Transitions[event] = target
	return sb
}

// State switches to another state, so chains can describe the whole machine.
func (sb *StateBuilder) State(name string) *StateBuilder {
	return sb.b.State(name)
}

// Build returns the assembled Config. Nothing is validated; call
// Config.Validate or construct with WithStrict for eager checks.
func (sb *StateBuilder) Build() *Config {
	return sb.b.Build()
}

func (b *Builder) Build() *Config {
	return b.config
}
