package coalesce_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shelf/internal/coalesce"
)

type recorder struct {
	mu     sync.Mutex
	values []int
}

func (r *recorder) add(v int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) snapshot() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.values...)
}

func TestCoalescer_SingleValue(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		c := coalesce.New(32*time.Millisecond, rec.add)

		c.Add(7)

		time.Sleep(40 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, []int{7}, rec.snapshot())
	})
}

func TestCoalescer_BurstDeliversLatest(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		c := coalesce.New(32*time.Millisecond, rec.add)

		for i := 1; i <= 10; i++ {
			c.Add(i)
		}

		time.Sleep(40 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, []int{10}, rec.snapshot())
	})
}

func TestCoalescer_AtMostOncePerWindow(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		c := coalesce.New(32*time.Millisecond, rec.add)

		// One event every 4ms for 320ms.
		for i := 1; i <= 80; i++ {
			c.Add(i)
			time.Sleep(4 * time.Millisecond)
		}

		time.Sleep(40 * time.Millisecond)
		synctest.Wait()

		got := rec.snapshot()
		require.NotEmpty(t, got)
		assert.LessOrEqual(t, len(got), 11)
		assert.Equal(t, 80, got[len(got)-1], "final event must be delivered")

		for i := 1; i < len(got); i++ {
			assert.Greater(t, got[i], got[i-1], "values must be delivered in order")
		}
	})
}

func TestCoalescer_WindowDoesNotSlide(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		c := coalesce.New(100*time.Millisecond, rec.add)

		c.Add(1)
		time.Sleep(60 * time.Millisecond)
		c.Add(2)
		time.Sleep(50 * time.Millisecond)
		synctest.Wait()

		// The window opened by the first Add has closed even though Adds kept coming.
		assert.Equal(t, []int{2}, rec.snapshot())
	})
}

func TestCoalescer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		c := coalesce.New(100*time.Millisecond, rec.add)

		c.Add(1)
		c.Add(2)
		c.Flush()

		assert.Equal(t, []int{2}, rec.snapshot())

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, []int{2}, rec.snapshot(), "flush must close the window")
	})
}

func TestCoalescer_FlushEmpty(t *testing.T) {
	rec := &recorder{}
	c := coalesce.New(100*time.Millisecond, rec.add)

	c.Flush()

	assert.Empty(t, rec.snapshot())
}

func TestCoalescer_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		c := coalesce.New(50*time.Millisecond, rec.add)

		c.Add(1)
		c.Stop()

		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		assert.Empty(t, rec.snapshot())
	})
}

func TestCoalescer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		c := coalesce.New[int](50*time.Millisecond, nil)

		c.Add(1)
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		c.Add(2)
		c.Flush()
	})
}
