package ai

import "sync/atomic"

// debugLoggingEnabled guards per-tick debug logs.
// Set via EnableDebugLogging() during initialization based on config.LogLevel.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables debug logging for the tick loop and
// its controllers. Call it from main after parsing config.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if debug logging is enabled.
// Use this to guard per-tick debug log calls:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("node claimed", "node", id, "free", q.FreeCount())
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
