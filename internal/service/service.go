// Package service holds the transport-independent request handlers for
// boards, lists and cards: input validation, parent checks, ordering and
// cache upkeep. Every error it returns is an *apperr.Error.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kanboard/internal/apperr"
	"kanboard/internal/telemetry"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Clock returns the current time. Services take one so tests can pin it.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now()
}

// stamp reads the clock at the precision the stores keep.
func stamp(now Clock) time.Time {
	return now().UTC().Truncate(time.Microsecond)
}

// nextTimestamp returns now, or one microsecond past prev when the clock has
// not moved beyond it, so updatedAt only ever advances.
func nextTimestamp(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Microsecond)
}

// trimmed returns s without surrounding whitespace, keeping nil as nil.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func validateInput(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperr.Validation("Invalid input")
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required", "min":
		return apperr.Validation(fmt.Sprintf("%s must not be empty", fe.Field()))
	case "gte":
		return apperr.Validation(fmt.Sprintf("%s must be zero or greater", fe.Field()))
	default:
		return apperr.Validation(fmt.Sprintf("%s is invalid", fe.Field()))
	}
}

// storeError translates a repository failure. notFound is the sentinel the
// repository uses for a missing row of the entity at hand.
func storeError(err, notFound error, what string) error {
	if err == nil {
		return nil
	}
	if notFound != nil && errors.Is(err, notFound) {
		return apperr.NotFound(what + " not found")
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperr.Unavailable("Store unavailable", err)
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return telemetry.Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// endSpan closes span, recording err when set.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperr.MessageOf(err))
	}
	span.End()
}

func loggerOrDefault(log *logrus.Logger) *logrus.Logger {
	if log != nil {
		return log
	}
	return logrus.StandardLogger()
}
