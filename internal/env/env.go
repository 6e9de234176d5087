package env

import (
	"time"
)

//goland:noinspection GoVarAndConstTypeMayBeOmitted,GoCommentStart
var (
	Debug          bool          = false            //调试模式
	TimerPrecision time.Duration = time.Millisecond //事件循环的定时器精度
	TaskQueueSize  int           = 1 << 8           //事件循环的任务队列长度
	SnowflakeNode  int64         = 1                //雪花算法句柄分配器的默认节点号
	DieChan        chan bool     = make(chan bool)  //等待停止的 chan
)

// Close 关闭 DieChan 通道, 以便其他组件可以监听到
func Close() {
	defer func() {
		recover()
	}()
	close(DieChan)
}
