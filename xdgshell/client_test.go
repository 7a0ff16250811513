package xdgshell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Ping reserves a fresh serial off the shared counter, arms a timer,
// and sends wm_base.ping; a matching pong disarms the timer without
// firing any timeout.
func TestClientPingPongDisarmsTimer(t *testing.T) {
	h := newHarness()
	client := h.shell.NewClient(1, 100)

	client.Ping()

	require.Len(t, h.sink.pings, 1)
	require.EqualValues(t, 100, h.sink.pings[0].wmBaseID)
	serial := h.sink.pings[0].serial
	require.NotZero(t, serial)
	require.NotZero(t, client.pingTimer)

	client.Pong(serial)

	require.Zero(t, client.pingTimer)
}

// A pong carrying a stale or unrelated serial is silently ignored: the
// timer stays armed exactly as it was.
func TestClientPongWithWrongSerialIsIgnored(t *testing.T) {
	h := newHarness()
	client := h.shell.NewClient(1, 100)

	client.Ping()
	timer := client.pingTimer
	require.NotZero(t, timer)

	client.Pong(h.sink.pings[0].serial + 1)

	require.Equal(t, timer, client.pingTimer)
}

// A second Ping before the first is answered replaces the outstanding
// one: the old timer is stopped and a fresh serial/timer pair is armed.
func TestClientPingReplacesOutstandingPing(t *testing.T) {
	h := newHarness()
	client := h.shell.NewClient(1, 100)

	client.Ping()
	first := h.sink.pings[0].serial
	firstTimer := client.pingTimer

	client.Ping()
	second := h.sink.pings[1].serial
	secondTimer := client.pingTimer

	require.NotEqual(t, first, second)
	require.NotEqual(t, firstTimer, secondTimer)

	_, stillArmed := h.loop.timers[firstTimer]
	require.False(t, stillArmed)

	// the original serial no longer disarms anything, since its timer
	// was already stopped when the second ping replaced it.
	client.Pong(first)
	require.Equal(t, secondTimer, client.pingTimer)
}

// A timed-out ping fires PingTimeoutEvent on every surface the client
// currently owns, and clears pingTimer so a later Pong for it is inert.
func TestClientPingTimeoutFiresOnEverySurface(t *testing.T) {
	h := newHarness()
	client := h.shell.NewClient(1, 100)

	base1 := newTestSurface(200)
	s1, err := client.NewXdgSurface(201, base1)
	require.NoError(t, err)
	base2 := newTestSurface(300)
	s2, err := client.NewXdgSurface(301, base2)
	require.NoError(t, err)

	var timedOut []*Surface
	s1.OnPingTimeout(func(ev PingTimeoutEvent) { timedOut = append(timedOut, ev.Surface) })
	s2.OnPingTimeout(func(ev PingTimeoutEvent) { timedOut = append(timedOut, ev.Surface) })

	client.Ping()
	timer := client.pingTimer
	h.loop.fireTimer(timer)

	require.ElementsMatch(t, []*Surface{s1, s2}, timedOut)
	require.Zero(t, client.pingTimer)
}
