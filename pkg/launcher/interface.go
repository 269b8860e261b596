package launcher

// Picker показва имената и връща избора на потребителя
type Picker interface {
	Exchange(names []string, argv []string) (choice string, ok bool, err error)
}

// Executor runs a command string directly, without a terminal.
type Executor interface {
	Launch(command string) error
}

// Wrapper runs a command string inside a pseudo-terminal.
type Wrapper interface {
	Run(command string) error
}
