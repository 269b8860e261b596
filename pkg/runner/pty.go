//go:build !windows

package runner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"syscall"

	"github.com/creack/pty"

	"github.com/lvim-tech/qlapps/internal/logging"
	"github.com/lvim-tech/qlapps/pkg/execline"
)

// PtyWrapper runs commands with a pseudo-terminal as their controlling
// terminal. The parent only reads from the master side.
type PtyWrapper struct {
	Logger *slog.Logger

	// Output receives a copy of everything the child writes to the terminal.
	Output io.Writer
}

// NewPtyWrapper създава wrapper с подадения logger
func NewPtyWrapper(logger *slog.Logger) *PtyWrapper {
	return &PtyWrapper{Logger: logging.OrDiscard(logger)}
}

// Run parses command, starts it on a new pty and drains the pty until
// end-of-stream, then waits for the child.
func (w *PtyWrapper) Run(command string) error {
	logger := logging.OrDiscard(w.Logger)

	args, err := execline.Parse(command)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		logger.Info("command arguments could not be parsed", "command", command)
		return nil
	}

	ptmx, tty, err := pty.Open()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPtyAlloc, err)
	}
	defer ptmx.Close()

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = tty
	cmd.Stdout = tty
	cmd.Stderr = tty
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true, Setctty: true}

	logger.Info("executing command in pty", "args", args)

	if err := cmd.Start(); err != nil {
		tty.Close()
		return fmt.Errorf("%w %q: %v", ErrSpawn, args[0], err)
	}
	// The child holds its own copy; closing ours lets the master see EOF.
	tty.Close()

	var buf bytes.Buffer
	var dst io.Writer = &buf
	if w.Output != nil {
		dst = io.MultiWriter(&buf, w.Output)
	}

	_, readErr := io.Copy(dst, ptmx)
	if isEndOfStream(readErr) {
		readErr = nil
	}

	waitErr := waitAndLog(logger, cmd)

	logger.Info("child output", "output", strings.TrimSpace(strings.ToValidUTF8(buf.String(), "�")))

	if readErr != nil {
		return fmt.Errorf("%w: %v", ErrPtyRead, readErr)
	}
	return waitErr
}

// isEndOfStream reports whether err marks a closed slave side. Linux
// returns EIO from the master once every slave descriptor is closed.
func isEndOfStream(err error) bool {
	return err == nil || errors.Is(err, io.EOF) || errors.Is(err, syscall.EIO)
}
