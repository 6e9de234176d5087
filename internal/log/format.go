package log

import (
	"fmt"
	"strings"
)

// FormatArgs 格式化日志参数:
// 1. 第一个参数是字符串且包含占位符时, 作为 format 交给 fmt.Sprintf;
// 2. 否则所有参数以空格拼接;
// 3. 最后一个参数为 error 时, 以 " - 错误信息" 的形式追加在末尾.
//
// 示例:
//
//	FormatArgs("hello %v", "world")                    // "hello world"
//	FormatArgs("timer fired", 3)                       // "timer fired 3"
//	FormatArgs("schedule-%v failed", 7, errors.New("x")) // "schedule-7 failed - x"
func FormatArgs(args ...any) string {
	if len(args) == 0 {
		return ""
	}

	//提取末尾的 error
	var trailingErr error
	if e, ok := args[len(args)-1].(error); ok && len(args) > 1 {
		trailingErr = e
		args = args[:len(args)-1]
	}

	var msg string
	if format, ok := args[0].(string); ok && strings.ContainsRune(format, '%') && len(args) > 1 {
		msg = fmt.Sprintf(format, args[1:]...)
	} else {
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			parts = append(parts, fmt.Sprint(arg))
		}
		msg = strings.Join(parts, " ")
	}

	if trailingErr != nil {
		return msg + " - " + trailingErr.Error()
	}
	return msg
}
