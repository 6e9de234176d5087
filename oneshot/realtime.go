package oneshot

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lonng/varinterval/internal/env"
	"github.com/lonng/varinterval/internal/log"
	"github.com/timandy/routine"
)

var _ Facility = (*Realtime)(nil)

// Realtime 基于 time.AfterFunc 的单次定时器设施, 回调在 runtime 的定时器协程中执行
type Realtime struct {
	name             string
	incrementCounter atomic.Int64
	mu               sync.Mutex
	timers           map[TimerID]*time.Timer
}

// NewRealtime 构造函数
func NewRealtime(name string) *Realtime {
	return &Realtime{
		name:   name,
		timers: make(map[TimerID]*time.Timer),
	}
}

// Arm 在 d 之后执行一次 fn
func (r *Realtime) Arm(d time.Duration, fn func()) TimerID {
	if fn == nil {
		panic("varinterval/oneshot: nil timer function")
	}
	id := TimerID(r.incrementCounter.Add(1))

	r.mu.Lock()
	defer r.mu.Unlock()

	r.timers[id] = time.AfterFunc(d, func() {
		// 已被取消
		if !r.remove(id) {
			return
		}
		r.run(id, fn)
	})
	return id
}

// Cancel 取消定时器
func (r *Realtime) Cancel(id TimerID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.timers[id]; ok {
		t.Stop()
		delete(r.timers, id)
	}
}

// Len 返回尚未触发的定时器数量
func (r *Realtime) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.timers)
}

// remove 删除定时器, 返回定时器是否仍然存在
func (r *Realtime) remove(id TimerID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.timers[id]; !ok {
		return false
	}
	delete(r.timers, id)
	return true
}

// run 执行定时器回调, 捕获 panic
func (r *Realtime) run(id TimerID, fn func()) {
	defer func() {
		if err := recover(); err != nil {
			log.Error("Varinterval host [%v] execute timer-%v error.", r.name, id, routine.NewRuntimeError(err))
		}
	}()
	if env.Debug {
		log.Debug("Varinterval host [%v] timer-%v fired.", r.name, id)
	}
	fn()
}
