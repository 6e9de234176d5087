package interval

import (
	"github.com/lonng/varinterval/oneshot"
)

// Options 管理器选项
type Options struct {
	Name      string           // 管理器名称, 用于日志
	Facility  oneshot.Facility // 单次定时器设施, 为空时使用 oneshot.Realtime
	Allocator Allocator        // 句柄分配器, 为空时使用自增计数器
}

// DefaultOptions 默认选项
func DefaultOptions() Options {
	return Options{
		Name: "default",
	}
}
