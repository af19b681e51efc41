package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()
	c.Add(10)

	assert.Equal(t, uint64(60), c.Load())
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(2 * time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), 2*time.Millisecond)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	r.Counter("payments_completed").Inc()
	r.Counter("payments_completed").Inc()
	r.Counter("payments_rejected").Inc()

	assert.Same(t, r.Counter("payments_completed"), r.Counter("payments_completed"))
	assert.Equal(t, map[string]uint64{
		"payments_completed": 2,
		"payments_rejected":  1,
	}, r.Snapshot())
	assert.Equal(t, []string{"payments_completed", "payments_rejected"}, r.Names())
}
