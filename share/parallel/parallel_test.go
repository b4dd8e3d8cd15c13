package parallel

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestPool(t *testing.T) {
	p := New(4)

	var sum int64
	for i := 1; i <= 100; i++ {
		i := int64(i)
		p.Add(func(ctx context.Context) error {
			atomic.AddInt64(&sum, i)
			return nil
		})
	}

	assert.NoError(t, p.Wait())
	assert.Equal(t, int64(5050), sum)
}

func TestPoolError(t *testing.T) {
	p := New(1)
	boom := errors.New("boom")

	var ran int64
	p.Add(func(ctx context.Context) error { return boom })
	for i := 0; i < 10; i++ {
		p.Add(func(ctx context.Context) error {
			atomic.AddInt64(&ran, 1)
			return nil
		})
	}

	assert.ErrorIs(t, p.Wait(), boom)
	assert.Zero(t, atomic.LoadInt64(&ran))
}

func TestPoolStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := New(2)
	p.Reset(ctx)
	cancel()

	p.Add(func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, p.Wait(), context.Canceled)
}
