package workers

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dispatcherConfig names one dispatcher flavor under test.
type dispatcherConfig struct {
	name string
	conf Config
}

func allDispatchers(workers int) []dispatcherConfig {
	return []dispatcherConfig{
		{name: "Persistent", conf: Config{Workers: workers}},
		{name: "Blocking", conf: Config{Workers: workers, Blocking: true}},
	}
}

func runDispatcherTest(t *testing.T, workers int, testFunc func(t *testing.T, d Dispatcher)) {
	for _, dc := range allDispatchers(workers) {
		t.Run(dc.name, func(t *testing.T) {
			d, err := New(dc.conf)
			require.NoError(t, err)
			defer d.Close()
			testFunc(t, d)
		})
	}
}

// closeWithin fails the test if Close does not return in time.
func closeWithin(t *testing.T, d Dispatcher, timeout time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		_ = d.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("Close did not return, workers deadlocked")
	}
}

func TestNew_SelectsDispatcher(t *testing.T) {
	tests := []struct {
		name       string
		conf       Config
		persistent bool
		workers    int
	}{
		{"many workers", Config{Workers: 4}, true, 4},
		{"single worker", Config{Workers: 1}, false, 1},
		{"zero workers", Config{Workers: 0}, false, 1},
		{"explicit blocking", Config{Workers: 8, Blocking: true}, false, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.conf)
			require.NoError(t, err)
			defer d.Close()

			_, isPersistent := d.(*Persistent)
			assert.Equal(t, tt.persistent, isPersistent)
			assert.Equal(t, tt.workers, d.Workers())
		})
	}
}

func TestPersistent_StartupHandshake(t *testing.T) {
	d, err := New(Config{Workers: 6})
	require.NoError(t, err)
	defer d.Close()

	p := d.(*Persistent)
	p.mu.Lock()
	defer p.mu.Unlock()
	assert.Equal(t, 6, p.count, "all workers must be idle when New returns")
	for i, s := range p.slots {
		assert.Equal(t, slotEmpty, s.state, "slot %d", i)
	}
}

func TestDispatch_RunsOncePerWorker(t *testing.T) {
	runDispatcherTest(t, 5, func(t *testing.T, d Dispatcher) {
		hits := make([]int, d.Workers())
		for round := 1; round <= 20; round++ {
			err := d.Dispatch(func(w int) error {
				hits[w]++
				return nil
			})
			require.NoError(t, err)
			for w, h := range hits {
				require.Equal(t, round, h, "worker %d after round %d", w, round)
			}
		}
	})
}

func TestDispatch_WritesVisibleAfterReturn(t *testing.T) {
	runDispatcherTest(t, 4, func(t *testing.T, d Dispatcher) {
		const per = 1000
		buf := make([]int, d.Workers()*per)
		for round := range 5 {
			err := d.Dispatch(func(w int) error {
				for k := range per {
					buf[w*per+k] = round*per + k
				}
				return nil
			})
			require.NoError(t, err)
			for i, v := range buf {
				require.Equal(t, round*per+i%per, v)
			}
		}
	})
}

func TestDispatch_ReturnsJobError(t *testing.T) {
	runDispatcherTest(t, 3, func(t *testing.T, d Dispatcher) {
		boom := errors.New("boom")
		err := d.Dispatch(func(w int) error {
			if w == 1 {
				return boom
			}
			return nil
		})
		assert.ErrorIs(t, err, boom)

		err = d.Dispatch(func(int) error { return nil })
		assert.NoError(t, err, "error must not leak into the next dispatch")
	})
}

func TestDispatch_RecoversPanic(t *testing.T) {
	runDispatcherTest(t, 2, func(t *testing.T, d Dispatcher) {
		err := d.Dispatch(func(w int) error {
			if w == 0 {
				panic("kernel exploded")
			}
			return nil
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "panic: kernel exploded")
		assert.Contains(t, err.Error(), "stack trace")

		var ran atomic.Int32
		require.NoError(t, d.Dispatch(func(int) error {
			ran.Add(1)
			return nil
		}))
		assert.Equal(t, int32(2), ran.Load(), "pool must survive a panicking job")
	})
}

func TestClose_Terminates(t *testing.T) {
	for _, rounds := range []int{0, 1, 50} {
		for _, dc := range allDispatchers(8) {
			t.Run(dc.name, func(t *testing.T) {
				d, err := New(dc.conf)
				require.NoError(t, err)
				for range rounds {
					require.NoError(t, d.Dispatch(func(int) error { return nil }))
				}
				closeWithin(t, d, 5*time.Second)
				closeWithin(t, d, time.Second)

				assert.ErrorIs(t, d.Dispatch(func(int) error { return nil }), ErrClosed)
			})
		}
	}
}

func TestPersistent_SetupFailure(t *testing.T) {
	var released atomic.Int32
	failing := errors.New("affinity denied")

	_, err := New(Config{
		Workers: 4,
		Setup: func(w int) (func(), error) {
			if w == 2 {
				return nil, failing
			}
			return func() { released.Add(1) }, nil
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWorkerStart)
	assert.ErrorIs(t, err, failing)
	assert.Equal(t, int32(3), released.Load(), "started workers must be torn down")
}

func TestPersistent_SetupSuccess(t *testing.T) {
	var setups, released atomic.Int32
	d, err := New(Config{
		Workers: 3,
		Setup: func(int) (func(), error) {
			setups.Add(1)
			return func() { released.Add(1) }, nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int32(3), setups.Load())

	require.NoError(t, d.Dispatch(func(int) error { return nil }))
	closeWithin(t, d, 5*time.Second)
	assert.Equal(t, int32(3), released.Load())
}
