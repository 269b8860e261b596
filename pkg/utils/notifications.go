package utils

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"

	helpers "github.com/lvim-tech/qlapps/internal/utils"
	"github.com/lvim-tech/qlapps/pkg/config"
)

// Notifier delivers error notifications according to NotificationConfig.
type Notifier struct {
	Config *config.NotificationConfig

	// Terminal reports whether messages should go to Stderr instead of a
	// desktop notification (default: IsTerminal).
	Terminal func() bool
	Stderr   io.Writer

	// LookPath finds the notification tool (default: helpers.CommandExists).
	LookPath func(string) bool
	// Start launches the tool without waiting for it.
	Start func(*exec.Cmd) error
}

// NewNotifier създава Notifier с default зависимости
func NewNotifier(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{
		Config:   cfg,
		Terminal: IsTerminal,
		Stderr:   os.Stderr,
		LookPath: helpers.CommandExists,
		Start:    func(cmd *exec.Cmd) error { return cmd.Start() },
	}
}

// Error shows an error notification. It does nothing when notifications
// are disabled or no tool is available.
func (n *Notifier) Error(title, message string) {
	cfg := n.Config
	if cfg == nil || !cfg.Enabled {
		return
	}

	// If in terminal and ShowInTerminal is enabled, print to stderr
	if cfg.ShowInTerminal && n.Terminal != nil && n.Terminal() {
		stderr := n.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		fmt.Fprintf(stderr, "[ERROR] [%s] %s\n", title, message)
		return
	}

	tool := cfg.Tool
	if tool == "" || tool == "auto" {
		tool = n.detectNotificationTool()
	}

	cmd := notificationCommand(tool, title, message, cfg.Timeout, cfg.Urgency)
	if cmd == nil {
		return
	}
	cmd.Env = os.Environ()
	if n.Start == nil {
		_ = cmd.Start()
		return
	}
	_ = n.Start(cmd)
}

// ============================================================================
// Internal Helper Functions
// ============================================================================

// detectNotificationTool detects which notification tool is available
func (n *Notifier) detectNotificationTool() string {
	if n.LookPath == nil {
		return ""
	}
	if n.LookPath("dunstify") {
		return "dunstify"
	}
	if n.LookPath("notify-send") {
		return "notify-send"
	}
	return ""
}

// notificationCommand builds the command for tool, or nil for an unknown tool
func notificationCommand(tool, title, message string, timeout int, urgency string) *exec.Cmd {
	if urgency == "" {
		urgency = "critical"
	}

	// Default timeout
	if timeout <= 0 {
		timeout = 5000
	}

	switch tool {
	case "dunstify", "notify-send":
		return exec.Command(tool,
			"-u", urgency,
			"-t", strconv.Itoa(timeout),
			title,
			message)
	default:
		return nil
	}
}
