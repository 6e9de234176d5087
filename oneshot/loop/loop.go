// Package loop 单协程事件循环: 任务和单次定时器都在同一个协程中执行.
package loop

import (
	"sync/atomic"
	"time"

	"github.com/lonng/varinterval/internal/env"
	"github.com/lonng/varinterval/internal/log"
	"github.com/lonng/varinterval/oneshot"
	"github.com/timandy/routine"
)

var _ oneshot.Facility = (*Loop)(nil)

// Task 定义一个任务类型
type Task func()

// State 事件循环状态
type State = int32

const (
	// StateCreated 已创建, 但未启动
	StateCreated State = 0
	// StateRunning 正在运行
	StateRunning State = 1
	// StateClosed 已关闭
	StateClosed State = 2
)

// Loop 事件循环
type Loop struct {
	name    string        // 名称
	tick    time.Duration // 最小时间粒度
	state   atomic.Int32  // 状态
	chDie   chan struct{} // 关闭信号通道
	chDone  chan struct{} // 主循环退出通道
	chTasks chan Task     // 任务队列
	tm      timerManager  // 管理所有的定时器
}

// NewLoop 构造一个新的事件循环, 需要调用 Start() 方法来启动. tick 不大于 0 时使用 env.TimerPrecision.
func NewLoop(name string, tick time.Duration) *Loop {
	if tick <= 0 {
		tick = env.TimerPrecision
	}
	return &Loop{
		name:    name,
		tick:    tick,
		chDie:   make(chan struct{}),
		chDone:  make(chan struct{}),
		chTasks: make(chan Task, env.TaskQueueSize),
		tm:      newTimerManager(),
	}
}

// runTask 执行一个任务, 捕获 panic
func (l *Loop) runTask(task Task) {
	if task == nil {
		return
	}
	defer func() {
		if err := recover(); err != nil {
			log.Error("Varinterval loop [%v] execute task error.", l.name, routine.NewRuntimeError(err))
		}
	}()
	task()
}

// runTimerTask 执行一个定时器任务, 捕获 panic
func (l *Loop) runTimerTask(id oneshot.TimerID, fn func()) {
	defer func() {
		if err := recover(); err != nil {
			log.Error("Varinterval loop [%v] execute timer-%v error.", l.name, id, routine.NewRuntimeError(err))
		}
	}()
	fn()
}

// run 主循环
func (l *Loop) run() {
	if env.Debug {
		log.Info("Varinterval loop [%v] starting.", l.name)
	}

	ticker := time.NewTicker(l.tick)
	defer func() {
		ticker.Stop()
		l.tm.close()
		close(l.chDone)
		if env.Debug {
			log.Info("Varinterval loop [%v] closed.", l.name)
		}
	}()

	for {
		select {
		case <-ticker.C:
			l.tm.cron(l)

		case task := <-l.chTasks:
			l.runTask(task)

		case <-l.chDie:
			return
		}
	}
}

// Start 启动事件循环
func (l *Loop) Start() {
	if !l.state.CompareAndSwap(StateCreated, StateRunning) {
		return
	}

	// 子协程启动循环
	go l.run()
}

// Close 关闭事件循环, 丢弃所有定时器和未执行的任务, 等待主循环退出; 不能在事件循环协程中调用
func (l *Loop) Close() {
	if !l.state.CompareAndSwap(StateRunning, StateClosed) {
		return
	}
	close(l.chDie)
	<-l.chDone
}

// State 返回当前状态
func (l *Loop) State() State {
	return l.state.Load()
}

// Execute 提交一个任务到事件循环, 已关闭时返回 false
func (l *Loop) Execute(task Task) bool {
	if l.state.Load() == StateClosed {
		if env.Debug {
			log.Info("Varinterval loop [%v] already closed, new tasks are not accepted.", l.name)
		}
		return false
	}
	select {
	case l.chTasks <- task:
		return true
	case <-l.chDie:
		return false
	}
}

// Arm 在 d 之后于事件循环协程中执行一次 fn, 可以在任意协程调用
func (l *Loop) Arm(d time.Duration, fn func()) oneshot.TimerID {
	return l.tm.newTimer(d, fn).id
}

// Cancel 取消定时器, 可以在任意协程调用
func (l *Loop) Cancel(id oneshot.TimerID) {
	l.tm.cancel(id)
}

// Len 返回尚未触发的定时器数量
func (l *Loop) Len() int {
	return l.tm.len()
}
