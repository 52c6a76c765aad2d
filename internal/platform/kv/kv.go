// Package kv provides the string key-value stores backing local persistence.
package kv

import (
	"context"
	"errors"
)

var ErrEmptyKey = errors.New("kv: key must not be empty")

type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}
