package ecs

import "github.com/TheBitDrifter/table"

// Logger is the minimal sink used for engine diagnostics: programmer-error
// panics are still panics, but errors that have no caller to return to (a
// deferred operation that fails when the queue drains, or an Enqueue* call
// that runs immediately and fails) are reported here instead of being
// dropped.
type Logger func(format string, args ...any)

// Config holds process-wide configuration for the ecs package.
var Config config = config{
	logger: func(string, ...any) {},
}

type config struct {
	tableEvents table.TableEvents
	logger      Logger
}

// SetTableEvents configures the table event callbacks used when building
// archetype storage.
func (c *config) SetTableEvents(te table.TableEvents) {
	c.tableEvents = te
}

// SetLogger installs the diagnostic sink. Passing nil restores the default
// no-op logger.
func (c *config) SetLogger(l Logger) {
	if l == nil {
		l = func(string, ...any) {}
	}
	c.logger = l
}
