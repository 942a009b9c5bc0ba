package shell

import (
	"context"
	"errors"
	"time"
)

const (
	// StatusSuccess indicates successful command completion.
	StatusSuccess = "success"

	// StatusError indicates a command processing error.
	StatusError = "error"

	// StatusRejected indicates a command that was refused by a domain policy.
	StatusRejected = "rejected"

	// LogMsgCommandFailed is logged when command processing fails.
	LogMsgCommandFailed = "command handler failed"

	// LogMsgEventHandlerFailed is logged when an event subscriber returns an error.
	LogMsgEventHandlerFailed = "event handler failed"

	// LogMsgDailySheetRowFailed is logged when reconciling a single sheet row fails.
	LogMsgDailySheetRowFailed = "daily sheet row failed"

	// LogAttrCommandType identifies the command type in logs.
	LogAttrCommandType = "command_type"

	// LogAttrEventType identifies the domain event type in logs.
	LogAttrEventType = "event_type"

	// LogAttrEventID identifies the domain event instance in logs.
	LogAttrEventID = "event_id"

	// LogAttrSubscriber identifies the event subscriber in logs.
	LogAttrSubscriber = "subscriber"

	// LogAttrStatus indicates the command processing status.
	LogAttrStatus = "status"

	// LogAttrBookID identifies the book copy in logs.
	LogAttrBookID = "book_id"

	// LogAttrPatronID identifies the patron in logs.
	LogAttrPatronID = "patron_id"

	// LogAttrDurationMS indicates the processing duration in milliseconds.
	LogAttrDurationMS = "duration_ms"

	// LogAttrError contains error details.
	LogAttrError = "error"
)

// Logger interface for basic logging, compatible with log/slog and the
// OpenTelemetry slog bridge.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger interface for context-aware logging, so trace correlation
// survives across goroutine boundaries.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// ToMilliseconds converts a time.Duration to float64 milliseconds with precision.
func ToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// LogCommandError logs command processing errors, preferring the contextual logger.
func LogCommandError(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	err error,
) {
	args := []any{
		LogAttrCommandType, commandType,
		LogAttrError, err.Error(),
	}

	if contextualLogger != nil {
		contextualLogger.ErrorContext(ctx, LogMsgCommandFailed, args...)
	} else if logger != nil {
		logger.Error(LogMsgCommandFailed, args...)
	}
}

// IsCancellationError checks if an error is due to context cancellation.
func IsCancellationError(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsTimeoutError checks if an error is due to context deadline exceeded.
func IsTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
