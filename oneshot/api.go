// Package oneshot 定义单次定时器设施: 等待一段时间后执行一次回调, 触发前可以取消.
package oneshot

import "time"

// TimerID 单次定时器的 ID, 由设施分配, 0 不会被分配
type TimerID int64

// Facility 单次定时器设施
type Facility interface {
	// Arm 在 d 之后执行一次 fn, 返回定时器 ID; fn 不能在 Arm 返回之前被同步执行
	Arm(d time.Duration, fn func()) TimerID

	// Cancel 取消尚未触发的定时器, 已触发或不存在的 ID 忽略
	Cancel(id TimerID)
}
