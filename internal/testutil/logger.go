package testutil

import (
	"bytes"
	"log/slog"
)

// BufferLogger returns a debug level text logger and the buffer it writes to.
func BufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}
