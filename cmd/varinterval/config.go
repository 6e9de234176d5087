package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lonng/varinterval/delay"
	"github.com/pingcap/errors"
	"go.yaml.in/yaml/v3"
)

// fileConfig 调度配置文件
type fileConfig struct {
	Schedules []scheduleConfig `yaml:"schedules"`
}

// scheduleConfig 配置文件中的一个调度, 延迟使用 time.ParseDuration 的格式
type scheduleConfig struct {
	Name   string   `yaml:"name"`
	Delays []string `yaml:"delays"`
	Times  int      `yaml:"times"`
	Args   []string `yaml:"args"`
}

// job 待运行的调度
type job struct {
	name   string
	delays []time.Duration
	times  int // 触发 times 次后取消, 0 表示不限次数
	args   []any
}

// loadFile 读取并解析调度配置文件
func loadFile(path string) ([]job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	jobs, err := parseConfig(data)
	if err != nil {
		return nil, errors.Annotatef(err, "config %s", path)
	}
	return jobs, nil
}

// parseConfig 解析调度配置
func parseConfig(data []byte) ([]job, error) {
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Trace(err)
	}
	if len(cfg.Schedules) == 0 {
		return nil, errors.New("no schedules")
	}

	jobs := make([]job, 0, len(cfg.Schedules))
	for i, sc := range cfg.Schedules {
		path := fmt.Sprintf("schedules[%d]", i)
		name := strings.TrimSpace(sc.Name)
		if name == "" {
			name = fmt.Sprintf("schedule-%d", i)
		}
		if sc.Times < 0 {
			return nil, errors.Errorf("%s: times must be >= 0", path)
		}

		delays := make([]time.Duration, 0, len(sc.Delays))
		for j, raw := range sc.Delays {
			d, err := parseDurationField(fmt.Sprintf("%s.delays[%d]", path, j), raw)
			if err != nil {
				return nil, err
			}
			delays = append(delays, d)
		}
		if err := delay.Validate(delays); err != nil {
			return nil, errors.Annotate(err, path)
		}

		jobs = append(jobs, job{
			name:   name,
			delays: delays,
			times:  sc.Times,
			args:   toArgs(sc.Args),
		})
	}
	return jobs, nil
}

// parseDurationField 解析一个非负的延迟
func parseDurationField(path, raw string) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Annotatef(delay.ErrInvalidArgument, "%s: invalid duration %q", path, raw)
	}
	if d < 0 {
		return 0, errors.Annotatef(delay.ErrInvalidArgument, "%s: duration must be >= 0", path)
	}
	return d, nil
}

func toArgs(raw []string) []any {
	args := make([]any, 0, len(raw))
	for _, a := range raw {
		args = append(args, a)
	}
	return args
}
