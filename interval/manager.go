// Package interval 可变延迟的重复定时器.
//
// 每个调度持有一个延迟序列, 第 n 次回调之前的等待时间取序列的第 n 个元素,
// 序列用完后一直使用最后一个元素. 调度在任意时刻都只有一个已设置的单次定时器:
// 定时器触发时先设置下一个定时器, 再执行回调, 直到调用 Stop.
package interval

import (
	"sync"
	"time"

	"github.com/lonng/varinterval/delay"
	"github.com/lonng/varinterval/internal/env"
	"github.com/lonng/varinterval/internal/log"
	"github.com/lonng/varinterval/oneshot"
	"github.com/pingcap/errors"
)

// Func 调度回调, 参数为 Start 时绑定的参数, 按原顺序逐个传入
type Func func(args ...any)

// schedule 一个运行中的调度
type schedule struct {
	fn     Func            // 回调
	args   []any           // 绑定的参数
	delays []time.Duration // 延迟序列, 只读
	count  int64           // 已触发次数
	timer  oneshot.TimerID // 当前已设置的单次定时器
}

// Manager 调度管理器, 持有句柄到调度的映射, 不同实例互不影响
type Manager struct {
	name      string
	facility  oneshot.Facility
	allocator Allocator
	mu        sync.Mutex
	schedules map[Handle]*schedule
}

// NewManager 构造函数
func NewManager(opts Options) *Manager {
	if opts.Name == "" {
		opts.Name = DefaultOptions().Name
	}
	if opts.Facility == nil {
		opts.Facility = oneshot.NewRealtime(opts.Name)
	}
	if opts.Allocator == nil {
		opts.Allocator = NewCounterAllocator()
	}
	return &Manager{
		name:      opts.Name,
		facility:  opts.Facility,
		allocator: opts.Allocator,
		schedules: make(map[Handle]*schedule),
	}
}

// Name 返回管理器名称
func (m *Manager) Name() string {
	return m.name
}

// Start 创建一个调度: 等待 delays[0] 后第一次执行 fn(args...), 之后每次等待序列中的下一个延迟.
// delays 为空或包含负数, 或 fn 为空时返回 delay.ErrInvalidArgument, 此时不会设置任何定时器.
// delays 不会被复制也不会被修改, 多个调度可以共享同一个序列.
func (m *Manager) Start(fn Func, delays []time.Duration, args ...any) (Handle, error) {
	if fn == nil {
		return 0, errors.Annotate(delay.ErrInvalidArgument, "nil schedule function")
	}
	if err := delay.Validate(delays); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	h := m.allocator.Next(m.activeLocked)
	s := &schedule{
		fn:     fn,
		args:   append([]any(nil), args...),
		delays: delays,
	}
	s.timer = m.arm(h, delay.At(delays, 0))
	m.schedules[h] = s

	if env.Debug {
		log.Debug("Varinterval manager [%v] schedule-%v started, first delay %v.", m.name, h, delays[0])
	}
	return h, nil
}

// Stop 取消调度, 句柄不存在或已取消时什么都不做.
// 与正在进行的触发竞争时, 回调最多还会再执行一次.
func (m *Manager) Stop(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.schedules[h]
	if !ok {
		return
	}
	m.facility.Cancel(s.timer)
	delete(m.schedules, h)

	if env.Debug {
		log.Debug("Varinterval manager [%v] schedule-%v stopped after %v invocations.", m.name, h, s.count)
	}
}

// StopAll 取消全部调度
func (m *Manager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for h, s := range m.schedules {
		m.facility.Cancel(s.timer)
		delete(m.schedules, h)
	}
}

// Active 检查句柄是否仍在调度中
func (m *Manager) Active(h Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.activeLocked(h)
}

// Count 返回调度已触发的次数, 句柄不存在时 ok 为 false
func (m *Manager) Count(h Handle) (count int64, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.schedules[h]
	if !ok {
		return 0, false
	}
	return s.count, true
}

// Len 返回调度中的数量
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.schedules)
}

// activeLocked 调用方必须持有 m.mu
func (m *Manager) activeLocked(h Handle) bool {
	_, ok := m.schedules[h]
	return ok
}

// arm 设置句柄 h 的下一个单次定时器, 调用方必须持有 m.mu
func (m *Manager) arm(h Handle, d time.Duration) oneshot.TimerID {
	return m.facility.Arm(d, func() {
		m.fire(h)
	})
}

// fire 单次定时器触发: 先设置下一个定时器, 再执行回调.
// 回调 panic 时下一个定时器已经设置好, 调度不会中断.
func (m *Manager) fire(h Handle) {
	m.mu.Lock()
	s, ok := m.schedules[h]
	if !ok {
		// 已被取消
		m.mu.Unlock()
		return
	}
	s.count++
	s.timer = m.arm(h, delay.At(s.delays, s.count))
	fn, args := s.fn, s.args
	m.mu.Unlock()

	fn(args...)
}
