// Package launcher ties the application catalog, the picker and the
// command runners together. Each entry point runs once and returns; no
// state is kept between calls.
package launcher

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lvim-tech/qlapps/internal/logging"
	"github.com/lvim-tech/qlapps/pkg/apps"
)

// Launcher is the selection orchestrator.
type Launcher struct {
	Provider apps.Provider
	Picker   Picker
	Executor Executor
	Wrapper  Wrapper

	// PtyPrefix routes matching commands through Wrapper. Empty disables it.
	PtyPrefix string

	Logger *slog.Logger
}

// List prints every visible application name, one per line.
func (l *Launcher) List(w io.Writer) error {
	catalog, err := l.catalog()
	if err != nil {
		return err
	}

	for _, name := range catalog.Names() {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

// Select offers the catalog to the picker started from pickerArgv and
// launches the chosen application. An empty choice or a name that is not
// in the catalog is logged and ends the call without error.
func (l *Launcher) Select(pickerArgv []string) error {
	logger := logging.OrDiscard(l.Logger)

	if l.Picker == nil {
		return ErrNoPicker
	}

	catalog, err := l.catalog()
	if err != nil {
		return err
	}

	choice, ok, err := l.Picker.Exchange(catalog.Names(), pickerArgv)
	if err != nil {
		return err
	}
	if !ok {
		logger.Info("no application was selected")
		return nil
	}

	app, found := catalog.Lookup(choice)
	if !found {
		logger.Info("no application found for choice", "choice", choice)
		return nil
	}

	return l.dispatch(app.Exec)
}

// RunCommand runs command through the pty wrapper regardless of its prefix.
func (l *Launcher) RunCommand(command string) error {
	if l.Wrapper == nil {
		return ErrNoRunner
	}

	logging.OrDiscard(l.Logger).Info("command to run", "command", command)
	return l.Wrapper.Run(command)
}

// UsesPty reports whether command would be routed through the pty wrapper.
func (l *Launcher) UsesPty(command string) bool {
	return l.PtyPrefix != "" && strings.HasPrefix(command, l.PtyPrefix)
}

func (l *Launcher) dispatch(command string) error {
	if l.Executor == nil || l.Wrapper == nil {
		return ErrNoRunner
	}

	if l.UsesPty(command) {
		logging.OrDiscard(l.Logger).Info("launching with pty", "command", command)
		return l.Wrapper.Run(command)
	}
	return l.Executor.Launch(command)
}

func (l *Launcher) catalog() (*apps.Catalog, error) {
	if l.Provider == nil {
		return nil, ErrNoProvider
	}

	catalog, err := apps.Load(l.Provider)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return catalog, nil
}
