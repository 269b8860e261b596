package picker

import (
	"fmt"

	"github.com/kballard/go-shellquote"

	"github.com/lvim-tech/qlapps/pkg/config"
	"github.com/lvim-tech/qlapps/pkg/execline"
)

// ResolveCommand turns a --dmenu value into the picker argv.
//
// An empty value selects cfg.DefaultPicker (or the built-in rofi command
// when that is unset). A value naming a preset from [pickers] uses the
// preset; anything else is split as a shell command line.
func ResolveCommand(cfg *config.Config, value string) ([]string, error) {
	if value == "" && cfg != nil {
		value = cfg.DefaultPicker
	}
	if value == "" {
		value = config.DefaultPickerCommand
	}

	if cfg != nil {
		if preset := cfg.GetPickerCommand(value); preset != nil && preset.Command != "" {
			return preset.Argv(), nil
		}
	}

	argv, err := shellquote.Split(value)
	if err != nil {
		return nil, fmt.Errorf("%w: picker %q: %v", execline.ErrMalformedCommand, value, err)
	}
	if len(argv) == 0 {
		return nil, ErrNoCommand
	}
	return argv, nil
}
