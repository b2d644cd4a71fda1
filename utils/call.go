package utils

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// CallKind classifies why a call failed
type CallKind string

const (
	CallTimeout  CallKind = "timeout"
	CallCanceled CallKind = "canceled"
	CallFailed   CallKind = "failed"
)

// CallError is returned by Call for every failure
type CallError struct {
	Op   string
	Kind CallKind
	Err  error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err is a CallError caused by the call deadline
func IsTimeout(err error) bool {
	var ce *CallError
	return errors.As(err, &ce) && ce.Kind == CallTimeout
}

type callResult[T any] struct {
	val T
	err error
}

// Call runs fn with a context bounded by timeout. fn keeps running if it
// ignores its context, but Call returns as soon as the deadline passes.
func Call[T any](ctx context.Context, timeout time.Duration, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan callResult[T], 1)
	go func() {
		val, err := fn(ctx)
		done <- callResult[T]{val, err}
	}()
	return await(ctx, op, done)
}

// await prefers a result that is already available over the context
// error, so a call finishing right at the deadline still counts.
func await[T any](ctx context.Context, op string, done <-chan callResult[T]) (T, error) {
	var zero T
	select {
	case res := <-done:
		return settle(ctx, op, res)
	case <-ctx.Done():
		select {
		case res := <-done:
			return settle(ctx, op, res)
		default:
			return zero, classify(ctx, op, ctx.Err())
		}
	}
}

func settle[T any](ctx context.Context, op string, res callResult[T]) (T, error) {
	if res.err != nil {
		var zero T
		return zero, classify(ctx, op, res.err)
	}
	return res.val, nil
}

func classify(ctx context.Context, op string, err error) *CallError {
	kind := CallFailed
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = CallTimeout
	case errors.Is(err, context.Canceled):
		kind = CallCanceled
	case ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded):
		kind = CallTimeout
	}
	return &CallError{Op: op, Kind: kind, Err: err}
}
