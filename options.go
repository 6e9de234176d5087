package varinterval

import (
	"time"

	"github.com/lonng/varinterval/internal/env"
	"github.com/lonng/varinterval/internal/log"
	"github.com/lonng/varinterval/interval"
	"github.com/lonng/varinterval/oneshot"
)

type Option func(*interval.Options)

//==== 基本

// WithDebugMode 启用调试
func WithDebugMode() Option {
	return func(opt *interval.Options) {
		env.Debug = true
	}
}

// WithLogger 设置日志
func WithLogger(logger log.Logger) Option {
	return func(opt *interval.Options) {
		log.SetLogger(logger)
	}
}

// WithName 设置管理器名称
func WithName(name string) Option {
	return func(opt *interval.Options) {
		opt.Name = name
	}
}

//==== 定时器

// WithFacility 设置单次定时器设施
func WithFacility(facility oneshot.Facility) Option {
	return func(opt *interval.Options) {
		opt.Facility = facility
	}
}

// WithAllocator 设置句柄分配器
func WithAllocator(allocator interval.Allocator) Option {
	return func(opt *interval.Options) {
		opt.Allocator = allocator
	}
}

// WithTimerPrecision 事件循环的定时器精度, 不能小于 1 毫秒
func WithTimerPrecision(precision time.Duration) Option {
	if precision < time.Millisecond {
		panic("time precision can not less than a Millisecond")
	}
	return func(opt *interval.Options) {
		env.TimerPrecision = precision
	}
}
