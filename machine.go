package fsmx

import (
	"log/slog"

	"github.com/comalice/fsmx/internal/history"
	"github.com/comalice/fsmx/internal/logger"
)

// Logger is the default logger used when none is provided.
var Logger = slog.Default()

// Machine tracks the active state of a Config and keeps an undo/redo
// timeline of state changes.
//
// A Machine is not safe for concurrent use. Callers sharing one across
// goroutines must hold a lock around every call, or around any sequence of
// calls that has to stay consistent.
type Machine struct {
	config  *Config
	active  string
	history *history.Stack[string]
	future  *history.Stack[string]
	logger  *slog.Logger

	strict             bool
	resetClearsHistory bool
}

// New creates a Machine positioned at cfg.Initial with an empty timeline.
// The initial state is not checked unless WithStrict is given.
func New(cfg *Config, opts ...Option) (*Machine, error) {
	if cfg == nil {
		return nil, ErrConfigMissing
	}
	m := &Machine{
		config:  cfg,
		active:  cfg.Initial,
		history: history.New[string](),
		future:  history.New[string](),
		logger:  Logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.strict {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustNew is like New but panics on error.
func MustNew(cfg *Config, opts ...Option) *Machine {
	m, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Config returns the configuration the machine was built from.
func (m *Machine) Config() *Config {
	return m.config
}

// State returns the active state name.
func (m *Machine) State() string {
	return m.active
}

// ChangeState jumps straight to target, bypassing transitions. The redo
// timeline is discarded.
func (m *Machine) ChangeState(target string) error {
	return m.changeState(target, "")
}

// Trigger fires event from the active state. The target is checked the same
// way ChangeState checks it, so a dangling transition yields an
// UnknownStateError.
func (m *Machine) Trigger(event string) error {
	def, _ := m.config.States.Get(m.active)
	target, ok := def.Target(event)
	if !ok {
		err := &UnknownEventError{State: m.active, Event: event}
		m.logger.Debug("trigger rejected", logger.Error(err))
		return err
	}
	return m.changeState(target, event)
}

func (m *Machine) changeState(target, event string) error {
	if !m.config.States.Has(target) {
		err := &UnknownStateError{State: target}
		m.logger.Debug("state change rejected", logger.Event(event), logger.Error(err))
		return err
	}

	from := m.active
	m.history.Push(from)
	m.active = target
	m.future.Clear()

	m.logger.Debug("state changed",
		logger.Transition(from, target),
		logger.Event(event),
		slog.Int("history", m.history.Len()),
		slog.Int("future", m.future.Len()),
	)
	return nil
}

// Reset returns to the initial state without checking it exists. The
// timeline is kept unless the machine was built with WithResetClearsHistory.
func (m *Machine) Reset() {
	from := m.active
	m.active = m.config.Initial
	if m.resetClearsHistory {
		m.history.Clear()
		m.future.Clear()
	}
	m.logger.Debug("reset",
		logger.Transition(from, m.active),
		slog.Bool("history_cleared", m.resetClearsHistory),
		slog.Int("history", m.history.Len()),
		slog.Int("future", m.future.Len()),
	)
}

// States lists state names in config order. With a non-empty event only
// states defining a transition for it are returned. Never nil.
func (m *Machine) States(event string) []string {
	names := m.config.States.Names()
	if event == "" {
		return names
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		def, _ := m.config.States.Get(name)
		if _, ok := def.Target(event); ok {
			out = append(out, name)
		}
	}
	return out
}

// Undo steps back to the previously active state. It returns false, and
// changes nothing, when there is no history.
func (m *Machine) Undo() bool {
	prev, ok := m.history.Pop()
	if !ok {
		return false
	}
	m.future.Push(m.active)
	from := m.active
	m.active = prev
	m.logger.Debug("undo", logger.Transition(from, prev), slog.Int("history", m.history.Len()), slog.Int("future", m.future.Len()))
	return true
}

// Redo reapplies the most recently undone change. It returns false, and
// changes nothing, when nothing has been undone since the last forward change.
func (m *Machine) Redo() bool {
	next, ok := m.future.Pop()
	if !ok {
		return false
	}
	m.history.Push(m.active)
	from := m.active
	m.active = next
	m.logger.Debug("redo", logger.Transition(from, next), slog.Int("history", m.history.Len()), slog.Int("future", m.future.Len()))
	return true
}

// ClearHistory drops both the undo and redo timelines. The active state is
// unchanged.
func (m *Machine) ClearHistory() {
	m.history.Clear()
	m.future.Clear()
	m.logger.Debug("history cleared", logger.State(m.active), slog.Int("history", 0), slog.Int("future", 0))
}

// CanUndo reports whether Undo would change the active state.
func (m *Machine) CanUndo() bool {
	return m.history.Len() > 0
}

// CanRedo reports whether Redo would change the active state.
func (m *Machine) CanRedo() bool {
	return m.future.Len() > 0
}

// History returns the previously active states, oldest first.
func (m *Machine) History() []string {
	return m.history.Items()
}

// Future returns the undone states; the last element is what Redo restores.
func (m *Machine) Future() []string {
	return m.future.Items()
}
