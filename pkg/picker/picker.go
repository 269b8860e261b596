// Package picker talks to external menu programs (rofi, dmenu, fzf,
// bemenu, fuzzel, ...). Candidates are written one per line to the
// program's stdin and the selected line is read back from its stdout.
package picker

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"unicode"

	"github.com/lvim-tech/qlapps/internal/logging"
)

var (
	// ErrNoCommand се връща когато picker командата е празна
	ErrNoCommand = errors.New("no picker command configured")

	// ErrSpawn се връща когато picker процесът не може да бъде стартиран
	ErrSpawn = errors.New("couldn't spawn picker command")

	// ErrWrite се връща при грешка при писане в stdin на picker-а
	ErrWrite = errors.New("couldn't write to picker stdin")

	// ErrRead се връща при грешка при четене от stdout на picker-а
	ErrRead = errors.New("couldn't read picker stdout")
)

// Bridge runs one picker round trip per Exchange call.
type Bridge struct {
	// Stderr receives the picker's stderr (default: os.Stderr).
	Stderr io.Writer
	Logger *slog.Logger
}

// NewBridge създава Bridge с подадения logger
func NewBridge(logger *slog.Logger) *Bridge {
	return &Bridge{
		Stderr: os.Stderr,
		Logger: logging.OrDiscard(logger),
	}
}

// Exchange offers names to the picker started from argv and returns the
// chosen line. ok is false when the picker printed nothing. The result is
// not checked against names.
func (b *Bridge) Exchange(names []string, argv []string) (choice string, ok bool, err error) {
	logger := logging.OrDiscard(b.Logger)

	if len(argv) == 0 {
		return "", false, ErrNoCommand
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stderr = b.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrSpawn, err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrSpawn, err)
	}

	if err := cmd.Start(); err != nil {
		return "", false, fmt.Errorf("%w %q: %v", ErrSpawn, argv[0], err)
	}

	output, err := roundTrip(stdin, stdout, names)
	if err != nil {
		_ = cmd.Wait()
		return "", false, err
	}
	logger.Info("sent application names to picker", "count", len(names), "picker", argv[0])

	// rofi and dmenu exit 1 on Escape; the empty output already says so.
	if err := cmd.Wait(); err != nil {
		logger.Debug("picker exited", "picker", argv[0], "error", err)
	}

	choice = strings.TrimRightFunc(string(output), unicode.IsSpace)
	if choice == "" {
		return "", false, nil
	}
	return choice, true, nil
}

// roundTrip writes the newline-joined names to w, closes it and reads r
// until EOF.
func roundTrip(w io.WriteCloser, r io.Reader, names []string) ([]byte, error) {
	if _, err := io.WriteString(w, strings.Join(names, "\n")); err != nil {
		w.Close()
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	output, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	return output, nil
}
