// Package logging configures the structured loggers used across mockhttp.
//
// It is a thin layer over log/slog. Engine components (tables, registries,
// transports) accept a *slog.Logger through their options and fall back to
// Nop() when none is given, so library users see no output unless they ask
// for it.
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//	client := mapping.NewClient(mapping.WithLogger(logger))
//
// Warnings are emitted for conditions the engine absorbs instead of failing:
// unmapping an index that does not exist, an entry whose matcher or resolver
// cannot be evaluated, and a computed resolver that produced no response.
package logging
