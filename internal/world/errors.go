package world

import "fmt"

// ConfigurationError reports a level that cannot be played as configured.
type ConfigurationError struct {
	Level string
	Msg   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("world: level %q: %s", e.Level, e.Msg)
}
