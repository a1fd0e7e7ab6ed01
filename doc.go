// Package fsmx is a finite-state-machine engine with undo and redo.
//
// A Machine interprets a Config: a table of named states, each mapping event
// names to target states, plus the name of the initial state. The machine
// holds exactly one active state and moves it either by firing an event
// (Trigger) or by jumping directly (ChangeState).
//
// # Timeline
//
// Every successful forward change pushes the previous state onto a history
// stack and discards the redo stack. Undo moves the active state onto the
// redo stack and pops the history; Redo does the reverse. Both return false
// when their stack is empty. ClearHistory empties both.
//
//	cfg := fsmx.NewBuilder("idle").
//		State("idle").On("start", "running").
//		State("running").On("stop", "idle").On("pause", "paused").
//		State("paused").On("resume", "running").
//		Build()
//
//	m, _ := fsmx.New(cfg)
//	_ = m.Trigger("start") // running
//	m.Undo()               // idle
//	m.Redo()               // running
//
// # Validation
//
// Lookups are lazy: an unknown initial state or a transition toward an
// undefined state is only reported when it is used. WithStrict checks the
// whole Config up front instead.
//
// # Errors
//
// Failures are reported as *UnknownStateError and *UnknownEventError, which
// match ErrUnknownState and ErrUnknownEvent under errors.Is. New returns
// ErrConfigMissing for a nil Config. No operation mutates the machine
// before its checks pass.
package fsmx
