package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lvim-tech/qlapps/internal/logging"
	"github.com/lvim-tech/qlapps/pkg/apps"
	"github.com/lvim-tech/qlapps/pkg/config"
	"github.com/lvim-tech/qlapps/pkg/launcher"
	"github.com/lvim-tech/qlapps/pkg/picker"
	"github.com/lvim-tech/qlapps/pkg/runner"
	"github.com/lvim-tech/qlapps/pkg/utils"
)

const version = "0.1.0"

// noValue is what --dmenu and --command hold when given without "=VALUE".
// A following positional argument then becomes the value ("-c CMD").
const noValue = "default"

type options struct {
	dmenu      string
	command    string
	list       bool
	configPath string
	logLevel   string
	verbose    bool
}

// app съдържа зависимостите на CLI-то, за да могат тестовете да ги подменят
type app struct {
	stdout io.Writer
	stderr io.Writer

	loadConfig  func(path string) (*config.Config, error)
	newLauncher func(cfg *config.Config, logger *slog.Logger) *launcher.Launcher

	cfg  *config.Config
	opts options
}

func newApp() *app {
	return &app{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		loadConfig:  loadConfig,
		newLauncher: newLauncher,
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func newLauncher(cfg *config.Config, logger *slog.Logger) *launcher.Launcher {
	dirs := apps.DefaultApplicationDirs(cfg.ApplicationDirs...)
	return &launcher.Launcher{
		Provider:  apps.NewDesktopProvider(dirs, logger),
		Picker:    picker.NewBridge(logger),
		Executor:  runner.NewProcessExecutor(logger),
		Wrapper:   runner.NewPtyWrapper(logger),
		PtyPrefix: cfg.PtyPrefix,
		Logger:    logger,
	}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qlapps [options] [COMMAND]",
		Short: "Launch desktop applications through a dmenu-style picker",
		Long: `qlapps lists installed desktop applications, offers them to a picker
such as rofi, dmenu or fzf, and runs the chosen one. Applications whose
command starts with the configured pty prefix run inside a pseudo-terminal.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.run,
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	flags := cmd.Flags()
	flags.StringVarP(&a.opts.dmenu, "dmenu", "d", "", "pick an application with a dmenu-style `COMMAND` (or a preset name)")
	flags.Lookup("dmenu").NoOptDefVal = noValue
	flags.BoolVarP(&a.opts.list, "list", "l", false, "list desktop applications")
	flags.StringVarP(&a.opts.command, "command", "c", "", "run a `COMMAND` wrapped with a pty")
	flags.Lookup("command").NoOptDefVal = noValue
	flags.StringVar(&a.opts.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/qlapps/config.toml)")
	flags.StringVar(&a.opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(a.initCmd(), a.versionCmd())
	return cmd
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	dmenu := flags.Changed("dmenu")
	command := flags.Changed("command")
	list := a.opts.list

	if len(args) > 0 {
		switch {
		case dmenu && a.opts.dmenu == noValue:
			a.opts.dmenu = args[0]
		case command && a.opts.command == noValue:
			a.opts.command = args[0]
		default:
			return fmt.Errorf("unexpected argument %q", args[0])
		}
	}

	if !dmenu && !command && !list {
		return cmd.Usage()
	}
	if !dmenu && command && a.opts.command == noValue {
		return cmd.Usage()
	}

	cfg, err := a.loadConfig(a.opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	logger, err := a.logger(cfg)
	if err != nil {
		return err
	}
	l := a.newLauncher(cfg, logger)

	switch {
	case dmenu:
		value := a.opts.dmenu
		if value == noValue {
			value = ""
		}
		argv, err := picker.ResolveCommand(cfg, value)
		if err != nil {
			return err
		}
		return l.Select(argv)
	case command:
		return l.RunCommand(a.opts.command)
	default:
		return l.List(a.stdout)
	}
}

// logger builds the logger from config, overridden by --log-level and --verbose.
func (a *app) logger(cfg *config.Config) (*slog.Logger, error) {
	levelName := cfg.LogLevel
	if a.opts.logLevel != "" {
		levelName = a.opts.logLevel
	}

	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	if a.opts.verbose {
		level = slog.LevelDebug
	}

	return logging.New(logging.Config{Output: a.stderr, Level: level}), nil
}

func (a *app) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default config to the user config path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.InitUserConfig()
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Config initialized at: %s\n", path)
			fmt.Fprintln(a.stdout, "\nYou can now edit the config file to customize qlapps.")
			return nil
		},
	}
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(a.stdout, "qlapps version %s\n", version)
		},
	}
}

// notifyError показва фатална грешка като desktop notification
func (a *app) notifyError(err error) {
	if a.cfg == nil {
		return
	}
	utils.NewNotifier(&a.cfg.Notifications).Error("qlapps", err.Error())
}
