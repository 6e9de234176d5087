package loop

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestLoop 测试事件循环
func TestLoop(t *testing.T) {
	t.Run("State", func(t *testing.T) {
		l := NewLoop("test", time.Millisecond)
		l.Close()
		assert.Equal(t, StateCreated, l.State())

		l.Start()
		assert.Equal(t, StateRunning, l.State())

		l.Close()
		assert.Equal(t, StateClosed, l.State())

		// 重复关闭应该安全
		l.Close()
		assert.Equal(t, StateClosed, l.State())
		assert.False(t, l.Execute(func() {}))
	})

	t.Run("Default Tick", func(t *testing.T) {
		l := NewLoop("test", 0)
		assert.Greater(t, l.tick, time.Duration(0))
	})

	t.Run("Execute Panic Task", func(t *testing.T) {
		l := NewLoop("test", time.Millisecond)
		l.Start()
		defer l.Close()

		var executed atomic.Bool
		assert.True(t, l.Execute(func() {
			executed.Store(true)
			panic("test panic")
		}))
		assert.Eventually(t, executed.Load, time.Second, 5*time.Millisecond)

		// 仍然可以处理新任务
		var afterPanic atomic.Bool
		l.Execute(func() { afterPanic.Store(true) })
		l.Execute(nil)
		assert.Eventually(t, afterPanic.Load, time.Second, 5*time.Millisecond)
	})

	t.Run("Arm Fires Once", func(t *testing.T) {
		l := NewLoop("test", time.Millisecond)
		l.Start()
		defer l.Close()

		var count atomic.Int32
		l.Arm(10*time.Millisecond, func() { count.Add(1) })
		assert.Eventually(t, func() bool {
			return count.Load() == 1
		}, time.Second, 5*time.Millisecond)

		time.Sleep(30 * time.Millisecond)
		assert.Equal(t, int32(1), count.Load())
		assert.Equal(t, 0, l.Len())
	})

	t.Run("Cancel", func(t *testing.T) {
		l := NewLoop("test", time.Millisecond)
		l.Start()
		defer l.Close()

		var fired atomic.Bool
		id := l.Arm(20*time.Millisecond, func() { fired.Store(true) })
		assert.Equal(t, 1, l.Len())
		l.Cancel(id)
		l.Cancel(id)
		assert.Equal(t, 0, l.Len())

		time.Sleep(50 * time.Millisecond)
		assert.False(t, fired.Load())
	})

	t.Run("Rearm On Loop Goroutine", func(t *testing.T) {
		l := NewLoop("test", time.Millisecond)
		l.Start()
		defer l.Close()

		var count atomic.Int32
		var fn func()
		fn = func() {
			if count.Add(1) < 3 {
				l.Arm(time.Millisecond, fn)
			}
		}
		l.Arm(time.Millisecond, fn)

		assert.Eventually(t, func() bool {
			return count.Load() == 3
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("Timer Panic Does Not Stop Loop", func(t *testing.T) {
		l := NewLoop("test", time.Millisecond)
		l.Start()
		defer l.Close()

		var after atomic.Bool
		l.Arm(time.Millisecond, func() { panic("test panic") })
		l.Arm(5*time.Millisecond, func() { after.Store(true) })
		assert.Eventually(t, after.Load, time.Second, 5*time.Millisecond)
	})

	t.Run("Close Drops Timers", func(t *testing.T) {
		l := NewLoop("test", time.Millisecond)
		l.Start()

		var fired atomic.Bool
		l.Arm(time.Hour, func() { fired.Store(true) })
		l.Close()
		assert.Equal(t, 0, l.Len())
		assert.False(t, fired.Load())
	})
}
