package service

import (
	"context"
	"errors"
	"time"

	"github.com/rentiva/slot-reservation/internal/model"
	"github.com/rentiva/slot-reservation/internal/repository"
)

const (
	retryAttempts = 3
	retryBaseWait = 100 * time.Millisecond
)

// withRetry runs fn up to retryAttempts times with doubling backoff.
// Domain outcomes (validation, unavailable, conflict, not-found) are never
// retried; only transient store failures are, and a persistent failure
// surfaces to the caller without having mutated anything.
func withRetry(ctx context.Context, fn func() error) error {
	wait := retryBaseWait
	var err error
	for attempt := 0; attempt < retryAttempts; attempt++ {
		if err = fn(); err == nil || !retryable(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}
	return err
}

func retryable(err error) bool {
	if _, ok := model.AsValidation(err); ok {
		return false
	}
	if _, ok := model.AsUnavailable(err); ok {
		return false
	}
	switch {
	case errors.Is(err, model.ErrHoldConflict),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrUnitNotFound),
		errors.Is(err, repository.ErrResourceNotFound),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}
