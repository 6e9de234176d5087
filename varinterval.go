// Copyright (c) nano Authors. All Rights Reserved.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package varinterval 可变延迟的重复定时器.
//
//	h, err := varinterval.Schedule(func(args ...any) {
//		fmt.Println(args...)
//	}, []time.Duration{16 * time.Millisecond, 8 * time.Millisecond, 4 * time.Millisecond}, "x", "y")
//	...
//	varinterval.CancelSchedule(h)
package varinterval

import (
	"sync"
	"time"

	"github.com/lonng/varinterval/delay"
	"github.com/lonng/varinterval/interval"
)

// VERSION returns current varinterval version
var VERSION = "0.1.0"

// ErrInvalidArgument 延迟序列为空或包含负数, 或回调为空
var ErrInvalidArgument = delay.ErrInvalidArgument

// 默认的全局管理器, 第一次使用时创建
var (
	mu      sync.Mutex        //锁
	Default *interval.Manager //默认管理器
)

// NewManager 构造一个独立的管理器
func NewManager(opts ...Option) *interval.Manager {
	o := interval.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return interval.NewManager(o)
}

// manager 返回默认管理器, 不存在时创建
func manager() *interval.Manager {
	mu.Lock()
	defer mu.Unlock()

	if Default == nil {
		Default = NewManager()
	}
	return Default
}

// Replace 替换默认的管理器, 旧管理器的全部调度会被取消
func Replace(m *interval.Manager) {
	mu.Lock()
	defer mu.Unlock()

	if m == nil {
		return
	}
	if Default != nil && Default != m {
		Default.StopAll()
	}
	Default = m
}

// Schedule 在默认管理器上创建调度, 见 interval.Manager.Start
func Schedule(fn interval.Func, delays []time.Duration, args ...any) (interval.Handle, error) {
	return manager().Start(fn, delays, args...)
}

// CancelSchedule 取消默认管理器上的调度, 重复取消或取消未知句柄时什么都不做
func CancelSchedule(h interval.Handle) {
	manager().Stop(h)
}

// IsInvalidArgument 检查 err 是否由 ErrInvalidArgument 派生
func IsInvalidArgument(err error) bool {
	return delay.IsInvalidArgument(err)
}
