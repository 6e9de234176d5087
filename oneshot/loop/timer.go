package loop

import (
	"sync/atomic"
	"time"

	"github.com/lonng/varinterval/oneshot"
)

// timer 事件循环中的一个单次定时器
type timer struct {
	id     oneshot.TimerID // 定时器 ID
	fn     func()          // 执行的函数
	when   int64           // 绝对触发时间(ns)
	closed atomic.Bool     // 已触发或已取消
}

// stop 取消定时器, 返回是否由本次调用关闭
func (t *timer) stop() bool {
	return t.closed.CompareAndSwap(false, true)
}

// stopped 检查定时器是否已关闭
func (t *timer) stopped() bool {
	return t.closed.Load()
}

// due 检查定时器是否到期
func (t *timer) due(ts int64) bool {
	return ts >= t.when
}

// newTimer 构造函数
func newTimer(id oneshot.TimerID, d time.Duration, fn func()) *timer {
	return &timer{
		id:   id,
		fn:   fn,
		when: time.Now().Add(d).UnixNano(),
	}
}
