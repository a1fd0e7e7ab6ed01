// Package console drives a Machine from a list of textual commands, one
// output line per command. It backs the fsmctl tool.
//
// Commands:
//
//	state             print the active state
//	trigger:<event>   fire an event
//	change:<state>    jump to a state
//	reset             return to the initial state
//	states[:<event>]  list states, optionally those handling event
//	undo, redo        step through the timeline
//	clear             drop the timeline
//	history           print history and future
package console

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/comalice/fsmx"
	"github.com/comalice/fsmx/internal/logger"
)

var ErrUnknownCommand = errors.New("unknown command")

// Runner executes scripts against a machine.
type Runner struct {
	Machine *fsmx.Machine
	Out     io.Writer
	Logger  *slog.Logger

	// StopOnError aborts the script at the first failing command and returns
	// its error. Otherwise failures are printed and the script continues.
	StopOnError bool
}

// Run executes every command in script. Unknown commands always abort.
func (r *Runner) Run(script []string) error {
	log := r.Logger
	if log == nil {
		log = logger.Discard()
	}
	for i, cmd := range script {
		line, err := r.exec(strings.TrimSpace(cmd))
		if errors.Is(err, ErrUnknownCommand) {
			return fmt.Errorf("command %d %q: %w", i+1, cmd, err)
		}
		if err != nil {
			log.Warn("command failed", slog.String("command", cmd), logger.State(r.Machine.State()), logger.Error(err))
			fmt.Fprintf(r.Out, "%s: error: %v\n", cmd, err)
			if r.StopOnError {
				return fmt.Errorf("command %d %q: %w", i+1, cmd, err)
			}
			continue
		}
		fmt.Fprintf(r.Out, "%s: %s\n", cmd, line)
	}
	return nil
}

func (r *Runner) exec(cmd string) (string, error) {
	m := r.Machine
	name, arg, _ := strings.Cut(cmd, ":")

	switch name {
	case "state":
		return m.State(), nil
	case "trigger":
		if err := m.Trigger(arg); err != nil {
			return "", err
		}
		return m.State(), nil
	case "change":
		if err := m.ChangeState(arg); err != nil {
			return "", err
		}
		return m.State(), nil
	case "reset":
		m.Reset()
		return m.State(), nil
	case "states":
		return "[" + strings.Join(m.States(arg), " ") + "]", nil
	case "undo":
		return fmt.Sprintf("%t %s", m.Undo(), m.State()), nil
	case "redo":
		return fmt.Sprintf("%t %s", m.Redo(), m.State()), nil
	case "clear":
		m.ClearHistory()
		return m.State(), nil
	case "history":
		return fmt.Sprintf("history=[%s] future=[%s]",
			strings.Join(m.History(), " "), strings.Join(m.Future(), " ")), nil
	}
	return "", ErrUnknownCommand
}
