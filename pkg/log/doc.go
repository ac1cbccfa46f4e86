/*
Package log provides structured logging for the engine using zerolog.

It wraps zerolog to give JSON-structured logging with component-specific
child loggers, configurable severity levels, and a small adapter
(EntityLogger) that satisfies entity.Logger so entity callbacks and engine
internals can log without the entity package importing zerolog directly.

# Usage

Initializing the global logger:

	import "github.com/cuemby/loom/pkg/log"

	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: true,
		Output:     os.Stdout,
	})

Component loggers:

	engineLog := log.WithComponent("engine")
	engineLog.Info().Int("fps", 60).Msg("frame loop starting")

	entityLog := log.WithEntity(string(e.ID()))
	entityLog.Debug().Msg("on_init ran")

# Levels

Debug is for verbose development detail, Info for normal operation
(frame boundaries, resource loads), Warn for recoverable anomalies, Error
for failed operations that are otherwise handled, and Fatal for conditions
that should terminate the process immediately.
*/
package log
