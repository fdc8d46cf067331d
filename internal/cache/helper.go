package cache

import (
	"context"

	"github.com/getsentry/sentry-go"
)

// StartCacheSpan opens a "db.cache" span on the request hub.
// It returns nil when the request carries no sentry hub.
func StartCacheSpan(ctx context.Context, backend, operation string, params map[string]interface{}) *sentry.Span {
	if sentry.GetHubFromContext(ctx) == nil {
		return nil
	}

	name := "cache." + backend + "." + operation
	span := sentry.StartSpan(ctx, name)
	if span == nil {
		return nil
	}
	span.Description = name
	span.Op = "db.cache"
	span.SetData("cache", backend)
	span.SetData("operation", operation)
	for k, v := range params {
		span.SetData(k, v)
	}
	return span
}

func FinishSpan(span *sentry.Span) {
	if span != nil {
		span.Finish()
	}
}

func SetSpanError(span *sentry.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.Status = sentry.SpanStatusInternalError
	span.SetData("error", err.Error())
}

func SetSpanSuccess(span *sentry.Span) {
	if span != nil {
		span.Status = sentry.SpanStatusOK
	}
}
