package idle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/linled/coffee-kiosk/internal/schedule"
)

var epoch = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func TestRapidRestart(t *testing.T) {
	t.Parallel()

	s := schedule.New(epoch)
	n := 0
	sv := New(s, 0, func() { n++ })
	assert.Equal(t, DefaultTimeout, sv.Timeout())
	sv.Start()
	now := epoch
	for i := 0; i < 100; i++ {
		now = now.Add(5 * time.Millisecond)
		s.Advance(now)
		sv.Restart()
	}
	assert.Equal(t, DefaultTimeout, sv.Remaining())
	s.Advance(now.Add(DefaultTimeout - time.Millisecond))
	assert.Equal(t, 0, n)
	s.Advance(now.Add(time.Hour))
	assert.Equal(t, 1, n)
	assert.Equal(t, uint32(1), sv.Expired())
	assert.False(t, sv.Running())

	sv.Restart()
	s.Advance(now.Add(2 * time.Hour))
	assert.Equal(t, 1, n, "restart after expiry is no-op")
}

func TestStop(t *testing.T) {
	t.Parallel()

	s := schedule.New(epoch)
	n := 0
	sv := New(s, time.Second, func() { n++ })
	sv.Stop()
	sv.Start()
	s.Advance(epoch.Add(500 * time.Millisecond))
	sv.Stop()
	assert.Equal(t, time.Duration(0), sv.Remaining())
	sv.Restart()
	s.Advance(epoch.Add(time.Minute))
	assert.Equal(t, 0, n)

	sv.Start()
	s.Advance(epoch.Add(time.Minute + time.Second))
	assert.Equal(t, 1, n)
}
