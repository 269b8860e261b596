// Package runner executes resolved application command lines.
// ProcessExecutor runs an argument vector directly; PtyWrapper runs a
// command string attached to a freshly allocated pseudo-terminal and
// drains its output until the child closes the terminal.
package runner

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/lvim-tech/qlapps/internal/logging"
	"github.com/lvim-tech/qlapps/pkg/execline"
)

var (
	// ErrSpawn се връща когато изпълнимият файл не може да бъде стартиран
	ErrSpawn = errors.New("could not execute")

	// ErrPtyAlloc се връща когато не може да се задели pseudo-terminal
	ErrPtyAlloc = errors.New("could not allocate pty")

	// ErrPtyRead се връща при грешка при четене от pty master
	ErrPtyRead = errors.New("pty read error")
)

// ProcessExecutor runs argument vectors as child processes and waits for them.
type ProcessExecutor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// NewProcessExecutor returns an executor that inherits the caller's standard streams.
func NewProcessExecutor(logger *slog.Logger) *ProcessExecutor {
	return &ProcessExecutor{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logging.OrDiscard(logger),
	}
}

// Run executes args[0] with args[1:] and blocks until it exits.
// An empty vector is logged and ignored. The exit status is only logged;
// failing to start the executable returns an error wrapping ErrSpawn.
func (e *ProcessExecutor) Run(args []string) error {
	logger := logging.OrDiscard(e.Logger)

	if len(args) == 0 {
		logger.Info("command arguments could not be parsed")
		return nil
	}

	logger.Info("executing command", "args", args)

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w %q: %v", ErrSpawn, args[0], err)
	}

	return waitAndLog(logger, cmd)
}

// Launch parses command and runs the resulting vector.
func (e *ProcessExecutor) Launch(command string) error {
	args, err := execline.Parse(command)
	if err != nil {
		return err
	}
	return e.Run(args)
}

// waitAndLog waits for cmd; a non-zero exit is logged, not returned.
func waitAndLog(logger *slog.Logger, cmd *exec.Cmd) error {
	err := cmd.Wait()
	if err == nil {
		logger.Debug("command exited", "path", cmd.Path, "status", 0)
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logger.Info("command exited", "path", cmd.Path, "status", exitErr.ExitCode())
		return nil
	}

	return fmt.Errorf("waiting for %s: %w", cmd.Path, err)
}
