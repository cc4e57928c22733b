package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/proxyparty/reactive"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	itersKey   = "iters"
	profileKey = "cpuprofile"
)

var (
	ww = []int{1, 10, 100}
	hh = []int{1, 10, 100}
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure write propagation through chains of observed records",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  itersKey,
				Usage: "Writes to the source per configuration",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to this file",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("starting profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	iters := int(cmd.Int(itersKey))
	if iters <= 0 {
		return fmt.Errorf("%s must be positive, got %d", itersKey, iters)
	}

	log.Printf("warming up")
	if _, err := benchmarkProxies(iters, false); err != nil {
		return err
	}
	tbl, err := benchmarkProxies(iters, true)
	if err != nil {
		return err
	}
	tbl.Render()
	return nil
}

// benchmarkProxies builds w chains of h records. The effect for link j reads
// link j-1 and writes link j, so one write to the source re-runs w*h effects.
func benchmarkProxies(iters int, shouldRender bool) (table.Writer, error) {
	tbl := table.NewWriter()
	tbl.SetTitle("Proxy propagation")
	if shouldRender {
		tbl.SetOutputMirror(os.Stdout)
	}
	tbl.AppendHeader(table.Row{"benchmark", "effect runs", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rs := reactive.CreateReactiveSystem()
			src := reactive.Observe(rs, reactive.NewRecord(map[string]any{"value": 1}))
			var effects []*reactive.EffectRunner
			for i := 0; i < w; i++ {
				last := src
				for j := 0; j < h; j++ {
					prev := last
					next := reactive.Observe(rs, reactive.NewRecord(map[string]any{"value": 0}))
					e, err := reactive.Effect(rs, func() error {
						next.Set("value", prev.Get("value").(int)+1)
						return nil
					})
					if err != nil {
						return nil, fmt.Errorf("building chain %d: %w", i, err)
					}
					effects = append(effects, e)
					last = next
				}
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.Set("value", src.Get("value").(int)+1)
				tach.AddTime(time.Since(start))
			}

			var runs uint64
			for _, e := range effects {
				runs += e.Runs()
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					humanize.Comma(int64(runs)),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	return tbl, nil
}
