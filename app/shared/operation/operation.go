// Package operation wraps service methods with tracing, metrics, logging,
// panic recovery and transaction handling.
package operation

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/clubhouse/app/metrics"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Runner holds the collaborators shared by every operation of one service.
type Runner struct {
	Service string
	Logger  *slog.Logger
	Metrics metrics.OperationMetrics
	Tracer  trace.Tracer
	DB      *bun.DB
}

// kinded is implemented by outcome.Outcome and outcome.Result.
type kinded interface {
	IsFailure() bool
	KindString() string
}

// WithTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func WithTelemetry[T any](
	r *Runner,
	ctx context.Context,
	operationName string,
	identifier string,
	op func(ctx context.Context) (T, error),
) (result T, err error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var span trace.Span
	if r.Tracer != nil {
		ctx, span = r.Tracer.Start(ctx, r.Service+"."+operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if r.Metrics != nil {
		r.Metrics.RecordOperationAttempt(ctx, operationName, r.Service)
	}

	startTime := time.Now()
	defer func() {
		if r.Metrics != nil {
			r.Metrics.RecordOperationDuration(ctx, operationName, r.Service, time.Since(startTime))
		}
	}()

	logger.InfoContext(ctx, "Operation triggered",
		slog.String("operation", operationName),
		slog.String("identifier", identifier),
	)

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, rec)
			logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", operationName),
				slog.String("identifier", identifier),
				slog.Any("error", err),
			)
			if r.Metrics != nil {
				r.Metrics.RecordOperationFailure(ctx, operationName, r.Service)
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			var zero T
			result = zero
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		logger.ErrorContext(ctx, "Operation failed with error",
			slog.String("operation", operationName),
			slog.String("identifier", identifier),
			slog.Any("error", wrappedErr),
		)
		if r.Metrics != nil {
			r.Metrics.RecordOperationFailure(ctx, operationName, r.Service)
		}
		span.RecordError(wrappedErr)
		span.SetStatus(codes.Error, wrappedErr.Error())
		return result, wrappedErr
	}

	if k, ok := any(result).(kinded); ok {
		if r.Metrics != nil {
			r.Metrics.RecordOutcome(ctx, operationName, r.Service, k.KindString())
		}
		span.SetAttributes(attribute.String("outcome", k.KindString()))
		if k.IsFailure() {
			logger.WarnContext(ctx, "Operation returned failure outcome",
				slog.String("operation", operationName),
				slog.String("identifier", identifier),
				slog.String("outcome", k.KindString()),
			)
		}
	}

	logger.InfoContext(ctx, "Operation completed",
		slog.String("operation", operationName),
		slog.String("identifier", identifier),
	)
	if r.Metrics != nil {
		r.Metrics.RecordOperationSuccess(ctx, operationName, r.Service)
	}
	return result, nil
}

// RunInTx runs fn inside a transaction. Without a database handle fn receives
// a nil bun.IDB so repositories fall back to their own connection.
func RunInTx[T any](
	r *Runner,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (T, error),
) (T, error) {
	if r.DB == nil {
		return fn(ctx, nil)
	}

	var result T
	err := r.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})
	return result, err
}

// Observe is WithTelemetry followed by RunInTx, the common case.
func Observe[T any](
	r *Runner,
	ctx context.Context,
	operationName string,
	identifier string,
	fn func(ctx context.Context, db bun.IDB) (T, error),
) (T, error) {
	return WithTelemetry(r, ctx, operationName, identifier, func(ctx context.Context) (T, error) {
		return RunInTx(r, ctx, fn)
	})
}
