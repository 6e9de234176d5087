package oneshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual(t *testing.T) {
	t.Run("Fire In Deadline Order", func(t *testing.T) {
		m := NewManual()
		var order []string
		m.Arm(30, func() { order = append(order, "c") })
		m.Arm(10, func() { order = append(order, "a") })
		m.Arm(20, func() { order = append(order, "b1") })
		m.Arm(20, func() { order = append(order, "b2") })

		assert.Equal(t, 0, m.Advance(9))
		assert.Empty(t, order)

		assert.Equal(t, 3, m.Advance(11))
		assert.Equal(t, []string{"a", "b1", "b2"}, order)
		assert.Equal(t, time.Duration(20), m.Now())
		assert.Equal(t, 1, m.Len())

		assert.Equal(t, 1, m.Advance(100))
		assert.Equal(t, []string{"a", "b1", "b2", "c"}, order)
		assert.Equal(t, time.Duration(120), m.Now())
		assert.Equal(t, 0, m.Len())
	})

	t.Run("Cancel", func(t *testing.T) {
		m := NewManual()
		var fired bool
		id := m.Arm(10, func() { fired = true })
		m.Cancel(id)
		m.Cancel(id)
		m.Cancel(12345)

		assert.Equal(t, 0, m.Advance(time.Second))
		assert.False(t, fired)
	})

	t.Run("Rearm Inside Callback", func(t *testing.T) {
		m := NewManual()
		var at []time.Duration
		var fn func()
		fn = func() {
			at = append(at, m.Now())
			if len(at) < 4 {
				m.Arm(5, fn)
			}
		}
		m.Arm(5, fn)

		assert.Equal(t, 4, m.Advance(100))
		assert.Equal(t, []time.Duration{5, 10, 15, 20}, at)
	})

	t.Run("Panic Propagates", func(t *testing.T) {
		m := NewManual()
		m.Arm(1, func() { panic("boom") })
		assert.Panics(t, func() { m.Advance(1) })
		assert.Equal(t, 0, m.Len())
	})

	t.Run("Nil Function", func(t *testing.T) {
		m := NewManual()
		assert.Panics(t, func() { m.Arm(1, nil) })
	})
}
