// Package sl contains small helpers for structured logging with slog.
package sl

import "log/slog"

// Err returns a slog.Attr with the "error" key and the error text as its
// value, so that errors are logged uniformly across the services.
//
// Example:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
