package fsmx

import "log/slog"

// Option configures a Machine at construction.
type Option func(*Machine)

// WithLogger sets the logger for the machine.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithStrict validates the config when the machine is built, so a bad
// initial state or dangling transition target fails New instead of a later
// Trigger.
func WithStrict() Option {
	return func(m *Machine) {
		m.strict = true
	}
}

// WithResetClearsHistory makes Reset also drop the undo and redo stacks.
func WithResetClearsHistory() Option {
	return func(m *Machine) {
		m.resetClearsHistory = true
	}
}
