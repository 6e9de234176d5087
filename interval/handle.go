package interval

import (
	"math"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/pingcap/errors"
)

// Handle 调度句柄, 调用方只能用它来取消调度. 0 不会被分配.
type Handle int64

// Allocator 句柄分配器
type Allocator interface {
	// Next 返回一个新句柄, active 报告某个句柄是否仍在使用中, 仍在使用中的句柄不能被返回
	Next(active func(Handle) bool) Handle
}

// counterAllocator 基于自增计数器的句柄分配器
type counterAllocator struct {
	mu   sync.Mutex
	last int64
}

// NewCounterAllocator 自增计数器分配器, 到达 math.MaxInt64 后从 1 重新开始, 并跳过仍在使用中的句柄
func NewCounterAllocator() Allocator {
	return &counterAllocator{}
}

// Next 返回下一个未被使用的句柄
func (a *counterAllocator) Next(active func(Handle) bool) Handle {
	a.mu.Lock()
	defer a.mu.Unlock()

	for {
		if a.last == math.MaxInt64 {
			a.last = 0
		}
		a.last++
		h := Handle(a.last)
		if active == nil || !active(h) {
			return h
		}
	}
}

// snowflakeAllocator 基于雪花算法的句柄分配器, 句柄按时间有序
type snowflakeAllocator struct {
	node *snowflake.Node
}

// NewSnowflakeAllocator 雪花算法分配器, node 取值范围 [0, 1023]
func NewSnowflakeAllocator(node int64) (Allocator, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, errors.Annotatef(err, "snowflake node %d", node)
	}
	return &snowflakeAllocator{node: n}, nil
}

// Next 返回下一个未被使用的句柄
func (a *snowflakeAllocator) Next(active func(Handle) bool) Handle {
	for {
		h := Handle(a.node.Generate().Int64())
		if h == 0 {
			continue
		}
		if active == nil || !active(h) {
			return h
		}
	}
}
