// Package idempotency records, in Redis, the outcome of requests that carry
// a client supplied idempotency key.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrInvalidState is returned when the stored value is not a known State.
var ErrInvalidState = errors.New("idempotency: invalid state")

// DefaultPrefix namespaces every key written by a StateTracker.
const DefaultPrefix = "mailinglist:idempotency:"

type State string

const (
	StateNone       State = "none"        // lock taken, the caller may proceed
	StateInProgress State = "in_progress" // another caller holds the lock
	StateCompleted  State = "completed"   // a previous run succeeded
	StateFailed     State = "failed"      // a previous run failed and may be retried
	StateError      State = "error"       // the state could not be read
)

func (s State) String() string {
	return string(s)
}

// Idempotency tracks keyed operations. Acquire takes a lock that expires
// after lockDuration; the Mark methods replace it with a final state kept
// for ttl.
type Idempotency interface {
	Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error)
	MarkCompleted(ctx context.Context, key string, ttl time.Duration) error
	MarkFailed(ctx context.Context, key string, ttl time.Duration) error
}

type StateTracker struct {
	client *redis.Client
	prefix string
}

func New(client *redis.Client) *StateTracker {
	return &StateTracker{client: client, prefix: DefaultPrefix}
}

// Acquire returns StateNone when the caller now owns key. A key whose
// previous run failed is taken over and also yields StateNone.
func (s *StateTracker) Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error) {
	fk := s.prefix + key

	// The lock can expire between SETNX and GET, so try twice.
	for range 2 {
		acquired, err := s.client.SetNX(ctx, fk, StateInProgress.String(), lockDuration).Result()
		if err != nil {
			return StateError, err
		}
		if acquired {
			return StateNone, nil
		}

		current, err := s.client.Get(ctx, fk).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return StateError, err
		}

		switch State(current) {
		case StateInProgress, StateCompleted:
			return State(current), nil
		case StateFailed:
			return s.retakeFailed(ctx, fk, lockDuration)
		default:
			return StateError, ErrInvalidState
		}
	}

	return StateError, ErrInvalidState
}

// retakeFailed swaps a failed marker for a fresh lock unless a concurrent
// caller got there first.
func (s *StateTracker) retakeFailed(ctx context.Context, fk string, lockDuration time.Duration) (State, error) {
	var swapped bool
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, fk).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != "" && State(current) != StateFailed {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, fk, StateInProgress.String(), lockDuration)
			return nil
		})
		swapped = err == nil
		return err
	}, fk)
	if errors.Is(err, redis.TxFailedErr) {
		return StateInProgress, nil
	}
	if err != nil {
		return StateError, err
	}
	if !swapped {
		return StateInProgress, nil
	}

	return StateNone, nil
}

func (s *StateTracker) MarkCompleted(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, StateCompleted.String(), ttl).Err()
}

func (s *StateTracker) MarkFailed(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, StateFailed.String(), ttl).Err()
}
