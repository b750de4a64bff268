package depot

import (
	"log/slog"

	"github.com/TheBitDrifter/bark"
)

// Config holds global configuration for the depot package
var Config config = config{
	logger:        bark.For("depot"),
	maxComponents: DefaultMaxComponents,
}

type config struct {
	logger        *slog.Logger
	maxComponents int
}

// SetLogger replaces the structured logger used for storage diagnostics
// A nil logger restores the bark logger for the depot component.
func (c *config) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = bark.For("depot")
	}
	c.logger = logger
}

// Logger returns the configured logger
func (c *config) Logger() *slog.Logger {
	return c.logger
}

// SetMaxComponents sets the component capacity of registries created by
// Factory.NewWorld when no registry is supplied
func (c *config) SetMaxComponents(n int) error {
	if err := validateMaxComponents(n); err != nil {
		return err
	}
	c.maxComponents = n
	return nil
}

// MaxComponents returns the default registry capacity
func (c *config) MaxComponents() int {
	return c.maxComponents
}
