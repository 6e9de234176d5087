package main

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/lonng/varinterval"
	"github.com/lonng/varinterval/delay"
	"github.com/lonng/varinterval/internal/env"
	"github.com/lonng/varinterval/internal/log"
	"github.com/lonng/varinterval/interval"
	"github.com/lonng/varinterval/oneshot"
	"github.com/lonng/varinterval/oneshot/loop"
	"github.com/pingcap/errors"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()

	app.Name = "varinterval"
	app.Version = varinterval.VERSION
	app.Usage = "run variable-delay repeating timers"

	app.Commands = []*cli.Command{
		{
			Name:  "run",
			Usage: "run schedules from flags or a config file",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "delays",
					Value: "16ms,8ms,4ms,2ms",
					Usage: "comma separated delay sequence, the last delay repeats forever",
				},
				&cli.IntFlag{
					Name:  "times",
					Value: 6,
					Usage: "stop after this many invocations, 0 means never",
				},
				&cli.StringSliceFlag{
					Name:  "arg",
					Usage: "argument bound to the callback, repeatable",
				},
				&cli.StringFlag{
					Name:  "config",
					Usage: "yaml file with schedules, overrides --delays/--times/--arg",
				},
				&cli.StringFlag{
					Name:  "host",
					Value: "realtime",
					Usage: "one-shot timer host: realtime or loop",
				},
				&cli.StringFlag{
					Name:  "allocator",
					Value: "counter",
					Usage: "schedule handle allocator: counter or snowflake",
				},
				&cli.DurationFlag{
					Name:  "duration",
					Usage: "stop everything after this long, 0 means wait for schedules or SIGINT",
				},
				&cli.BoolFlag{
					Name:  "debug",
					Usage: "enable debug logs",
				},
			},
			Action: run,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal("Varinterval exited.", err)
	}
}

// jobsFromContext 从命令行参数构造调度
func jobsFromContext(ctx *cli.Context) ([]job, error) {
	if path := ctx.String("config"); path != "" {
		return loadFile(path)
	}
	delays, err := delay.Parse(ctx.String("delays"))
	if err != nil {
		return nil, err
	}
	if ctx.Int("times") < 0 {
		return nil, errors.New("times must be >= 0")
	}
	return []job{{
		name:   "cli",
		delays: delays,
		times:  ctx.Int("times"),
		args:   toArgs(ctx.StringSlice("arg")),
	}}, nil
}

// newFacility 按名称构造单次定时器设施, 返回的 closer 用于释放资源
func newFacility(host string) (oneshot.Facility, func(), error) {
	switch host {
	case "realtime":
		return oneshot.NewRealtime("cli"), func() {}, nil
	case "loop":
		l := loop.NewLoop("cli", env.TimerPrecision)
		l.Start()
		return l, l.Close, nil
	default:
		return nil, nil, errors.Errorf("unknown host %q", host)
	}
}

// newAllocator 按名称构造句柄分配器
func newAllocator(name string) (interval.Allocator, error) {
	switch name {
	case "counter":
		return interval.NewCounterAllocator(), nil
	case "snowflake":
		return interval.NewSnowflakeAllocator(env.SnowflakeNode)
	default:
		return nil, errors.Errorf("unknown allocator %q", name)
	}
}

func run(ctx *cli.Context) error {
	jobs, err := jobsFromContext(ctx)
	if err != nil {
		return err
	}
	facility, closer, err := newFacility(ctx.String("host"))
	if err != nil {
		return err
	}
	defer closer()
	allocator, err := newAllocator(ctx.String("allocator"))
	if err != nil {
		return err
	}

	opts := []varinterval.Option{
		varinterval.WithName("cli"),
		varinterval.WithFacility(facility),
		varinterval.WithAllocator(allocator),
	}
	if ctx.Bool("debug") {
		opts = append(opts, varinterval.WithDebugMode())
	}
	m := varinterval.NewManager(opts...)
	defer m.StopAll()

	var wg sync.WaitGroup
	for _, j := range jobs {
		if err := startJob(m, j, &wg); err != nil {
			return err
		}
	}

	// 全部有限次数的调度结束
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	sg := make(chan os.Signal, 1)
	signal.Notify(sg, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sg)
	go func() {
		select {
		case s := <-sg:
			log.Info("Varinterval got signal: %v", s)
			env.Close()
		case <-done:
		}
	}()

	var timeout <-chan time.Time
	if d := ctx.Duration("duration"); d > 0 {
		timeout = time.After(d)
	}

	select {
	case <-done:
		log.Info("Varinterval all schedules finished.")
	case <-timeout:
		log.Info("Varinterval duration elapsed, %v schedules still active.", m.Len())
	case <-env.DieChan:
		log.Info("Varinterval interrupted, %v schedules still active.", m.Len())
	}
	return nil
}

// startJob 启动一个调度; 有限次数的调度在最后一次触发时取消自身
func startJob(m *interval.Manager, j job, wg *sync.WaitGroup) error {
	var (
		h     interval.Handle
		ready = make(chan struct{})
		count atomic.Int64
		once  sync.Once
	)
	begin := time.Now()
	if j.times > 0 {
		wg.Add(1)
	}

	h, err := m.Start(func(args ...any) {
		<-ready
		n := count.Add(1)
		log.Info("[%v] #%v after %v args=%v", j.name, n, time.Since(begin).Round(time.Millisecond), args)
		if j.times > 0 && n >= int64(j.times) {
			once.Do(func() {
				m.Stop(h)
				wg.Done()
			})
		}
	}, j.delays, j.args...)
	if err != nil {
		if j.times > 0 {
			wg.Done()
		}
		return errors.Annotatef(err, "schedule %s", j.name)
	}
	close(ready)
	return nil
}
