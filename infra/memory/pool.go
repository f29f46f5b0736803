// Package memory provides object pooling for arena-style slot reuse.
package memory

import "sync"

// Pool is a typed object pool. The book recycles order slots through it
// so a long-lived reserve does not grow storage with order churn.
type Pool[T any] struct {
	p *sync.Pool
}

func NewPool[T any](ctor func() *T) *Pool[T] {
	return &Pool[T]{
		p: &sync.Pool{
			New: func() any { return ctor() },
		},
	}
}

func (p *Pool[T]) Get() *T {
	return p.p.Get().(*T)
}

func (p *Pool[T]) Put(v *T) {
	p.p.Put(v)
}
