package redis

import (
	"context"
	"errors"
	"time"
)

// ErrStateNotFound is returned when a state value is unknown, expired, or already used.
var ErrStateNotFound = errors.New("state not found")

var (
	setStateValue    = Set
	getDelStateValue = GetDel
)

// StateStore holds short-lived, single-use values such as OAuth state parameters.
type StateStore struct {
	prefix string
	ttl    time.Duration
}

func NewStateStore(prefix string, ttl time.Duration) *StateStore {
	return &StateStore{prefix: prefix, ttl: ttl}
}

// Save binds value to state for the store's TTL.
func (s *StateStore) Save(ctx context.Context, state, value string) error {
	return setStateValue(ctx, s.prefix+state, value, s.ttl)
}

// Consume returns the value bound to state and removes it, so a state can be redeemed once.
func (s *StateStore) Consume(ctx context.Context, state string) (string, error) {
	if state == "" {
		return "", ErrStateNotFound
	}
	value, err := getDelStateValue(ctx, s.prefix+state)
	if err != nil {
		if IsNil(err) {
			return "", ErrStateNotFound
		}
		return "", err
	}
	return value, nil
}
