package loop

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lonng/varinterval/oneshot"
)

// timerManager 定时器管理器
type timerManager struct {
	incrementCounter atomic.Int64               // 定时器 ID 自增计数器
	timers           map[oneshot.TimerID]*timer // 调度中的定时器, 只能在 loop 的协程中读写
	mu               sync.Mutex                 // 读写 pendingTimers 和 index 的锁
	pendingTimers    []*timer                   // 外部创建 timer 时, 先放到这里边, 等待被 stealTimers 偷走
	index            map[oneshot.TimerID]*timer // 全部未关闭的定时器, 供 cancel 查找
}

// newTimerManager 构造函数
func newTimerManager() timerManager {
	return timerManager{
		timers: make(map[oneshot.TimerID]*timer),
		index:  make(map[oneshot.TimerID]*timer),
	}
}

// addTimer 可以在任意协程执行, 添加一个定时器到 pendingTimers 中
func (tm *timerManager) addTimer(t *timer) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.pendingTimers = append(tm.pendingTimers, t)
	tm.index[t.id] = t
}

// cancel 可以在任意协程执行, 关闭定时器, 下次 cron 时从 timers 中移除
func (tm *timerManager) cancel(id oneshot.TimerID) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if t, ok := tm.index[id]; ok {
		t.stop()
		delete(tm.index, id)
	}
}

// len 返回未关闭的定时器数量
func (tm *timerManager) len() int {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	return len(tm.index)
}

// 只能被 loop 协程执行, 把 pendingTimers 转移 timers 中
func (tm *timerManager) stealTimers() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	for _, t := range tm.pendingTimers {
		tm.timers[t.id] = t
	}
	tm.pendingTimers = nil
}

// 只能被 loop 协程执行, 从 index 中移除已触发的定时器
func (tm *timerManager) release(fired []*timer) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	for _, t := range fired {
		delete(tm.index, t.id)
	}
}

// 只能被 loop 协程执行, 触发到期的定时器
func (tm *timerManager) cron(l *Loop) {
	// 抢夺 timer 到 timers
	tm.stealTimers()

	// 没有定时器, 直接返回
	if len(tm.timers) <= 0 {
		return
	}

	// 先摘下全部到期的定时器, 回调中新设置的定时器下一个 tick 再处理
	ts := time.Now().UnixNano()
	var dueTimers []*timer
	for id, t := range tm.timers {
		if t.stopped() {
			delete(tm.timers, id)
			continue
		}
		if t.due(ts) {
			delete(tm.timers, id)
			dueTimers = append(dueTimers, t)
		}
	}
	if len(dueTimers) <= 0 {
		return
	}
	tm.release(dueTimers)

	// 按触发时间执行, 与 cancel 竞争时只有一方能关闭定时器
	sort.Slice(dueTimers, func(i, j int) bool {
		return less(dueTimers[i], dueTimers[j])
	})
	for _, t := range dueTimers {
		if t.stop() {
			l.runTimerTask(t.id, t.fn)
		}
	}
}

// 只能被 loop 协程执行, 清空全部定时器
func (tm *timerManager) close() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	for _, t := range tm.index {
		t.stop()
	}
	tm.timers = make(map[oneshot.TimerID]*timer)
	tm.index = make(map[oneshot.TimerID]*timer)
	tm.pendingTimers = nil
}

// newTimer 创建一个单次定时器, 等待 d 后执行 fn
func (tm *timerManager) newTimer(d time.Duration, fn func()) *timer {
	if fn == nil {
		panic("varinterval/loop: nil timer function")
	}
	t := newTimer(oneshot.TimerID(tm.incrementCounter.Add(1)), d, fn)
	tm.addTimer(t)
	return t
}

// less 按触发时间排序, 相同时按 ID 排序
func less(a, b *timer) bool {
	if a.when != b.when {
		return a.when < b.when
	}
	return a.id < b.id
}
