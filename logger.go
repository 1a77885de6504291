package tiler

import (
	"log/slog"
	"sync/atomic"
)

// silentLogger is in effect until SetLogger installs another logger.
var silentLogger = slog.New(slog.DiscardHandler)

// activeLogger receives the diagnostics of planning, conversion and
// resource updates.
var activeLogger atomic.Pointer[slog.Logger]

func init() {
	activeLogger.Store(silentLogger)
}

// SetLogger routes tiler diagnostics to l. Nil silences them again, which is
// also the state before the first call. It may be called while other
// goroutines plan layouts or convert surfaces.
//
// Messages start with "tiler: " and carry flat attributes such as width,
// height, pitch, size and rule.
//   - [slog.LevelDebug]: the rule chosen for each 2D texture, computed
//     layouts, swizzles in both directions, mip chain uploads, resizes
//     and mappings
//   - [slog.LevelWarn]: constant buffer updates dropped because their box
//     lies outside the buffer
//
// Example:
//
//	tiler.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silentLogger
	}
	activeLogger.Store(l)
}

// Logger returns the logger installed by SetLogger, or a silent one.
func Logger() *slog.Logger {
	return activeLogger.Load()
}
