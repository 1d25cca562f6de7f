// Package loader runs independent data fetches concurrently. Each task
// delivers its own mo.Result; one failing task never cancels the others.
package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/rs/zerolog"
	"github.com/samber/mo"
)

// ErrStopped is the result of a task submitted after Wait
var ErrStopped = errors.New("loader stopped")

// Loader is a bounded pool of named load tasks
type Loader struct {
	ctx    context.Context
	pool   *workerpool.WorkerPool
	logger zerolog.Logger

	mu      sync.Mutex
	stopped bool
}

// New creates a loader running at most size tasks at once
func New(ctx context.Context, size int, logger zerolog.Logger) *Loader {
	if size < 1 {
		size = 1
	}
	return &Loader{
		ctx:    ctx,
		pool:   workerpool.New(size),
		logger: logger,
	}
}

// Pending is the eventual result of a submitted task
type Pending[T any] struct {
	name   string
	done   chan struct{}
	result mo.Result[T]
}

// Go submits fn under name. It returns immediately.
func Go[T any](l *Loader, name string, fn func(ctx context.Context) (T, error)) *Pending[T] {
	p := &Pending[T]{name: name, done: make(chan struct{})}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		p.result = mo.Err[T](fmt.Errorf("%s: %w", name, ErrStopped))
		close(p.done)
		return p
	}

	l.pool.Submit(func() {
		defer close(p.done)
		defer func() {
			if r := recover(); r != nil {
				p.result = mo.Err[T](fmt.Errorf("%s: panic: %v", name, r))
				l.logger.Error().Str("task", name).Interface("panic", r).Msg("Load task panicked")
			}
		}()

		value, err := fn(l.ctx)
		if err != nil {
			l.logger.Error().Err(err).Str("task", name).Msg("Load task failed")
			p.result = mo.Err[T](err)
			return
		}
		p.result = mo.Ok(value)
	})

	return p
}

// Wait blocks until every submitted task has finished. Tasks submitted
// afterwards are not run and fail with ErrStopped.
func (l *Loader) Wait() {
	l.mu.Lock()
	l.stopped = true
	l.mu.Unlock()

	l.pool.StopWait()
}

// Name returns the name the task was submitted under
func (p *Pending[T]) Name() string {
	return p.name
}

// Result blocks until the task has finished
func (p *Pending[T]) Result() mo.Result[T] {
	<-p.done
	return p.result
}
