package parallel

import (
	"context"
	"sync"
	"time"
)

type Pool interface {
	Reset(ctx context.Context)
	Add(f func(ctx context.Context) error)
	Stop()
	Wait() error
}

type pool struct {
	Pool

	ctx       context.Context
	ctxCancel func()

	wg sync.WaitGroup

	queue     []func(ctx context.Context) error
	queueLock sync.Mutex
	queueWake chan struct{}

	errLock   sync.Mutex
	lastError error

	workersLock sync.RWMutex
	workers     int
	workersMax  int

	idle time.Duration
}

// New returns a pool running at most workers jobs at once. The first failing job cancels the rest.
func New(workers int) Pool {
	if workers < 1 {
		workers = 1
	}
	p := &pool{
		queue:      make([]func(ctx context.Context) error, 0, workers),
		queueWake:  make(chan struct{}, workers),
		workersMax: workers,
		idle:       5 * time.Second,
	}
	p.Reset(context.Background())

	return p
}

func (p *pool) Reset(ctx context.Context) {
	p.ctx, p.ctxCancel = context.WithCancel(ctx)

	p.errLock.Lock()
	p.lastError = nil
	p.errLock.Unlock()
}

func (p *pool) Add(f func(ctx context.Context) error) {
	p.wg.Add(1)

	p.queueLock.Lock()
	p.queue = append(p.queue, f)
	p.queueLock.Unlock()

	p.workersLock.Lock()
	if p.workers < p.workersMax {
		p.workers++
		go p.work()
	}
	p.workersLock.Unlock()

	select {
	case p.queueWake <- struct{}{}:
	default:
	}
}

func (p *pool) Stop() {
	p.ctxCancel()
}

func (p *pool) Wait() error {
	p.wg.Wait()

	p.errLock.Lock()
	defer p.errLock.Unlock()
	if p.lastError == nil && p.ctx.Err() != nil {
		return p.ctx.Err()
	}
	return p.lastError
}

func (p *pool) work() {
	var f func(ctx context.Context) error
	for {
		f = nil

		p.queueLock.Lock()
		if len(p.queue) > 0 {
			f = p.queue[0]
			if len(p.queue) > 1 {
				copy(p.queue, p.queue[1:])
			}
			p.queue = p.queue[:len(p.queue)-1]
		}
		p.queueLock.Unlock()

		if f == nil {
			select {
			case <-time.After(p.idle):
				p.workersLock.Lock()
				p.workers--
				p.workersLock.Unlock()
				return

			case <-p.queueWake:
			}

			continue
		}

		var err error
		if p.ctx.Err() != nil {
			err = p.ctx.Err()
		} else {
			err = f(p.ctx)
		}
		if err != nil {
			p.errLock.Lock()
			if p.lastError == nil {
				p.lastError = err
			}
			p.errLock.Unlock()
			p.ctxCancel()
		}
		p.wg.Done()
	}
}
