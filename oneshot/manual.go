package oneshot

import (
	"sync"
	"time"
)

var _ Facility = (*Manual)(nil)

// manualTimer Manual 中的一个定时器
type manualTimer struct {
	id   TimerID
	when time.Duration // 相对 Manual 起点的触发时间
	fn   func()
}

// Manual 虚拟时钟驱动的单次定时器设施, 只有调用 Advance 时才会触发定时器.
// 回调在调用 Advance 的协程中执行, 回调的 panic 会传播给 Advance 的调用方.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	nextID TimerID
	timers []*manualTimer // 按 ID 递增排列, 即按 Arm 的顺序
}

// NewManual 构造函数
func NewManual() *Manual {
	return &Manual{}
}

// Arm 在虚拟时间 d 之后执行一次 fn
func (m *Manual) Arm(d time.Duration, fn func()) TimerID {
	if fn == nil {
		panic("varinterval/oneshot: nil timer function")
	}
	if d < 0 {
		d = 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.timers = append(m.timers, &manualTimer{id: m.nextID, when: m.now + d, fn: fn})
	return m.nextID
}

// Cancel 取消定时器
func (m *Manual) Cancel(id TimerID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, t := range m.timers {
		if t.id == id {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}

// Now 返回从创建到现在经过的虚拟时间
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.now
}

// Len 返回尚未触发的定时器数量
func (m *Manual) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.timers)
}

// Advance 推进虚拟时间 d, 依次触发到期的定时器, 触发时间相同时按 Arm 的顺序.
// 回调中新设置且在本次推进范围内到期的定时器也会被触发. 返回触发的数量.
func (m *Manual) Advance(d time.Duration) int {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	fired := 0
	for {
		t := m.popDue(target)
		if t == nil {
			break
		}
		fired++
		t.fn()
	}

	m.mu.Lock()
	if m.now < target {
		m.now = target
	}
	m.mu.Unlock()
	return fired
}

// popDue 取出最早到期的定时器, 并把虚拟时间推进到它的触发时间
func (m *Manual) popDue(target time.Duration) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := -1
	for i, t := range m.timers {
		if t.when > target {
			continue
		}
		if idx < 0 || t.when < m.timers[idx].when {
			idx = i
		}
	}
	if idx < 0 {
		return nil
	}

	t := m.timers[idx]
	m.timers = append(m.timers[:idx], m.timers[idx+1:]...)
	m.now = t.when
	return t
}
