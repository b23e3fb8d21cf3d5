// Package pool provides a typed wrapper around sync.Pool.
package pool

import (
	"sync"
)

// A Pool is a generic wrapper around a sync.Pool.
type Pool[T any] struct {
	pool sync.Pool
}

// New creates a pool which will use fn to create new instances of T.
func New[T any](fn func() T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{New: func() any { return fn() }},
	}
}

// Get a T from the pool, creating one if the pool is empty.
func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

// Put a T back in the pool
func (p *Pool[T]) Put(x T) {
	p.pool.Put(x)
}
