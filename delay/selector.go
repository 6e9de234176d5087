// Package delay 从延迟序列中选择下一次触发前的等待时间.
//
// 序列按调用次数从头开始取值, 取到末尾后一直复用最后一个值. 选择过程不修改序列,
// 多个调度共享同一个序列是安全的.
package delay

import (
	"time"

	"github.com/pingcap/errors"
)

// ErrInvalidArgument 延迟序列为空或包含负数
var ErrInvalidArgument = errors.New("invalid argument")

// Validate 校验延迟序列: 非空, 且每个元素都不为负数
func Validate(delays []time.Duration) error {
	if len(delays) == 0 {
		return errors.Annotate(ErrInvalidArgument, "empty delay sequence")
	}
	for i, d := range delays {
		if d < 0 {
			return errors.Annotatef(ErrInvalidArgument, "negative delay %v at index %d", d, i)
		}
	}
	return nil
}

// Select 返回第 count 次调用之前的延迟, count 从 0 开始.
// count 大于等于 len(delays)-1 时固定返回最后一个元素.
func Select(delays []time.Duration, count int64) (time.Duration, error) {
	if err := Validate(delays); err != nil {
		return 0, err
	}
	if count < 0 {
		return 0, errors.Annotatef(ErrInvalidArgument, "negative invocation count %d", count)
	}
	return At(delays, count), nil
}

// At 同 Select, 但不做校验, 调用方必须保证 delays 已通过 Validate 且 count >= 0
func At(delays []time.Duration, count int64) time.Duration {
	last := int64(len(delays) - 1)
	if count >= last {
		return delays[last]
	}
	return delays[count]
}

// IsInvalidArgument 检查 err 是否由 ErrInvalidArgument 派生
func IsInvalidArgument(err error) bool {
	return err != nil && errors.Cause(err) == ErrInvalidArgument
}
