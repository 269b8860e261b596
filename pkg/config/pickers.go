package config

// PickersConfig за всеки поддържан picker
type PickersConfig struct {
	Rofi   PickerCommand `toml:"rofi"`
	Dmenu  PickerCommand `toml:"dmenu"`
	Fzf    PickerCommand `toml:"fzf"`
	Bemenu PickerCommand `toml:"bemenu"`
	Fuzzel PickerCommand `toml:"fuzzel"`
}

// PickerCommand описва как да се стартира picker
type PickerCommand struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

// Argv returns the command followed by its arguments.
func (p PickerCommand) Argv() []string {
	if p.Command == "" {
		return nil
	}
	return append([]string{p.Command}, p.Args...)
}

// PickerNames lists the preset names in the order they are documented.
func PickerNames() []string {
	return []string{"rofi", "dmenu", "fzf", "bemenu", "fuzzel"}
}

// GetPickerCommand връща preset за конкретен picker, или nil ако няма такъв
func (c *Config) GetPickerCommand(name string) *PickerCommand {
	switch name {
	case "rofi":
		return &c.Pickers.Rofi
	case "dmenu":
		return &c.Pickers.Dmenu
	case "fzf":
		return &c.Pickers.Fzf
	case "bemenu":
		return &c.Pickers.Bemenu
	case "fuzzel":
		return &c.Pickers.Fuzzel
	default:
		return nil
	}
}

// mergePickerConfigs merge picker presets; a preset with a command replaces the default
func mergePickerConfigs(merged *PickersConfig, user *PickersConfig) {
	if user.Rofi.Command != "" {
		merged.Rofi = user.Rofi
	}
	if user.Dmenu.Command != "" {
		merged.Dmenu = user.Dmenu
	}
	if user.Fzf.Command != "" {
		merged.Fzf = user.Fzf
	}
	if user.Bemenu.Command != "" {
		merged.Bemenu = user.Bemenu
	}
	if user.Fuzzel.Command != "" {
		merged.Fuzzel = user.Fuzzel
	}
}
