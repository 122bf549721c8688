package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrigger_OnlyLastRuns(t *testing.T) {
	d := New(20 * time.Millisecond)
	var calls atomic.Int32
	got := make(chan int, 5)

	for i := 1; i <= 5; i++ {
		n := i
		d.Trigger(func() {
			calls.Add(1)
			got <- n
		})
	}

	select {
	case n := <-got:
		assert.Equal(t, 5, n)
	case <-time.After(time.Second):
		t.Fatal("debounced call never ran")
	}

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, d.Pending())
}

func TestTrigger_CancelHandle(t *testing.T) {
	d := New(20 * time.Millisecond)
	var calls atomic.Int32

	cancel := d.Trigger(func() { calls.Add(1) })
	assert.True(t, d.Pending())
	cancel()
	assert.False(t, d.Pending())

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestTrigger_StaleCancelDoesNotDropNewer(t *testing.T) {
	d := New(20 * time.Millisecond)
	done := make(chan struct{})

	cancelFirst := d.Trigger(func() { t.Error("superseded call ran") })
	d.Trigger(func() { close(done) })
	cancelFirst()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("newer call was cancelled by a stale handle")
	}
}

func TestCancel(t *testing.T) {
	d := New(20 * time.Millisecond)
	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Cancel()

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestFlush(t *testing.T) {
	d := New(time.Hour)
	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })

	d.Flush()
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, d.Pending())

	d.Flush()
	assert.Equal(t, int32(1), calls.Load(), "nothing pending after flush")
	assert.Equal(t, time.Hour, d.Delay())
}
