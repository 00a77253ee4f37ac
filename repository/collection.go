// Package repository owns one persisted collection per type and seeds it from
// the generators the first time it is read.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"captiveportal/store"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrAlreadySent        = errors.New("campaign already sent")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Collection encodes a whole collection as JSON in the store
type Collection[T any] struct {
	store  store.Store
	name   store.Collection
	logger *logrus.Entry
}

func NewCollection[T any](s store.Store, name store.Collection, logger *logrus.Entry) *Collection[T] {
	return &Collection[T]{store: s, name: name, logger: logger}
}

// Load returns the stored value and whether one was found. A payload that
// cannot be decoded counts as absent.
func (c *Collection[T]) Load(ctx context.Context) (T, bool, error) {
	var v T

	payload, err := c.store.Get(ctx, c.name)
	if errors.Is(err, store.ErrNotFound) {
		return v, false, nil
	}
	if err != nil {
		return v, false, fmt.Errorf("load %s: %w", c.name, err)
	}

	if err := json.Unmarshal(payload, &v); err != nil {
		c.logger.WithError(err).WithField("collection", c.name).Warn("Discarding unreadable collection")
		var zero T
		return zero, false, nil
	}
	return v, true, nil
}

// Save replaces the whole collection
func (c *Collection[T]) Save(ctx context.Context, v T) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	if err := c.store.Set(ctx, c.name, payload); err != nil {
		return fmt.Errorf("save %s: %w", c.name, err)
	}
	return nil
}

func (c *Collection[T]) Clear(ctx context.Context) error {
	return c.store.Clear(ctx, c.name)
}
