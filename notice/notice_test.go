package notice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func TestShowAndExpire(t *testing.T) {
	clock := &fakeClock{}
	b := NewWithTimer(4*time.Second, clock.AfterFunc)

	b.Success("Cliente creado exitosamente")

	assert.Equal(t, Message{Text: "Cliente creado exitosamente", Kind: Success}, b.Current())
	require.Len(t, clock.timers, 1)
	assert.Equal(t, 4*time.Second, clock.timers[0].d)

	clock.timers[0].f()
	assert.True(t, b.Current().Empty())
}

func TestErrorExpiresLikeSuccess(t *testing.T) {
	clock := &fakeClock{}
	b := NewWithTimer(time.Second, clock.AfterFunc)

	b.Error("Error al cargar clientes")
	assert.Equal(t, Error, b.Current().Kind)

	clock.timers[0].f()
	assert.True(t, b.Current().Empty())
}

func TestNewMessageRestartsDelay(t *testing.T) {
	clock := &fakeClock{}
	b := NewWithTimer(time.Second, clock.AfterFunc)

	b.Error("first")
	b.Success("second")

	require.Len(t, clock.timers, 2)
	assert.True(t, clock.timers[0].stopped, "old timer is stopped")

	// The old timer firing anyway must not clear the newer message.
	clock.timers[0].f()
	assert.Equal(t, "second", b.Current().Text)

	clock.timers[1].f()
	assert.True(t, b.Current().Empty())
}

func TestClear(t *testing.T) {
	clock := &fakeClock{}
	b := NewWithTimer(time.Second, clock.AfterFunc)

	b.Success("x")
	b.Clear()

	assert.True(t, b.Current().Empty())
	assert.True(t, clock.timers[0].stopped)
}

func TestDefaultTTL(t *testing.T) {
	clock := &fakeClock{}
	b := NewWithTimer(0, clock.AfterFunc)
	b.Success("x")
	assert.Equal(t, DefaultTTL, clock.timers[0].d)
}

func TestRealTimerClears(t *testing.T) {
	b := New(10 * time.Millisecond)
	b.Success("x")
	assert.Eventually(t, func() bool { return b.Current().Empty() }, time.Second, 5*time.Millisecond)
}

func TestNilSchedulerFallsBackToRealTimer(t *testing.T) {
	b := NewWithTimer(10*time.Millisecond, nil)
	require.NotPanics(t, func() { b.Error("x") })
	assert.Eventually(t, func() bool { return b.Current().Empty() }, time.Second, 5*time.Millisecond)
}
