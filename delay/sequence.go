package delay

import (
	"strings"
	"time"

	"github.com/pingcap/errors"
)

// Parse 解析逗号分隔的延迟序列, 例如 "16ms,8ms,4ms,2ms"
func Parse(raw string) ([]time.Duration, error) {
	var delays []time.Duration
	for i, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		d, err := time.ParseDuration(field)
		if err != nil {
			return nil, errors.Annotatef(ErrInvalidArgument, "delay %d: %q: %v", i, field, err)
		}
		delays = append(delays, d)
	}
	if err := Validate(delays); err != nil {
		return nil, err
	}
	return delays, nil
}

// Halving 构造从 start 开始逐次减半直到 floor 的序列, 最后一个元素为 floor.
// 例如 Halving(16ms, 2ms) = [16ms 8ms 4ms 2ms].
func Halving(start, floor time.Duration) ([]time.Duration, error) {
	if start < 0 || floor <= 0 {
		return nil, errors.Annotatef(ErrInvalidArgument, "halving from %v to %v", start, floor)
	}
	var delays []time.Duration
	for d := start; d > floor; d /= 2 {
		delays = append(delays, d)
	}
	return append(delays, floor), nil
}
