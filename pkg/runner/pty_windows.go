//go:build windows

package runner

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/creack/pty"

	"github.com/lvim-tech/qlapps/internal/logging"
)

// PtyWrapper is unavailable on Windows; Run always fails with ErrPtyAlloc.
type PtyWrapper struct {
	Logger *slog.Logger
	Output io.Writer
}

// NewPtyWrapper създава wrapper с подадения logger
func NewPtyWrapper(logger *slog.Logger) *PtyWrapper {
	return &PtyWrapper{Logger: logging.OrDiscard(logger)}
}

// Run reports that pseudo-terminals are not supported on this platform.
func (w *PtyWrapper) Run(command string) error {
	return fmt.Errorf("%w: %v", ErrPtyAlloc, pty.ErrUnsupported)
}
