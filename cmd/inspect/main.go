package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/delaneyj/proxyparty/reactive"
	"github.com/delaneyj/proxyparty/todo"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const (
	todosKey  = "todos"
	writesKey = "writes"
	seedKey   = "seed"
	debugKey  = "debug"
)

type inspectConfig struct {
	todos  int
	writes int
	seed   uint64
	logger *slog.Logger
}

func main() {
	cmd := &cli.Command{
		Name:  "inspect",
		Usage: "Drive writes through an observed todo list and dump the dependency ledger",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  todosKey,
				Usage: "Number of todos",
				Value: 5,
			},
			&cli.IntFlag{
				Name:  writesKey,
				Usage: "Random toggles to perform",
				Value: 20,
			},
			&cli.UintFlag{
				Name:  seedKey,
				Usage: "Seed for the toggles",
				Value: 1,
			},
			&cli.BoolFlag{
				Name:  debugKey,
				Usage: "Log every tracked read and triggering write to stderr",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := inspectConfig{
				todos:  int(cmd.Int(todosKey)),
				writes: int(cmd.Int(writesKey)),
				seed:   cmd.Uint(seedKey),
			}
			if cmd.Bool(debugKey) {
				cfg.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
			}
			return inspect(os.Stdout, cfg)
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func inspect(w io.Writer, cfg inspectConfig) error {
	if cfg.todos <= 0 {
		return fmt.Errorf("%s must be positive, got %d", todosKey, cfg.todos)
	}
	if cfg.writes < 0 {
		return fmt.Errorf("%s must not be negative, got %d", writesKey, cfg.writes)
	}

	rs := reactive.CreateReactiveSystem(reactive.WithLogger(cfg.logger))
	list := make([]todo.Todo, cfg.todos)
	for i := range list {
		list[i] = todo.NewTodo(rs, "todo "+strconv.Itoa(i), false, i%3)
	}

	var rendered []string
	for i, td := range list {
		_, err := reactive.Effect(rs, func() error {
			mark := " "
			if td.Done() {
				mark = "x"
			}
			rendered = append(rendered, fmt.Sprintf("[%s] %s", mark, td.Title()))
			return nil
		}, reactive.WithName("render-"+strconv.Itoa(i)))
		if err != nil {
			return fmt.Errorf("render effect %d: %w", i, err)
		}
	}

	done := 0
	summary, err := reactive.Effect(rs, func() error {
		done = 0
		for _, td := range list {
			if td.Done() {
				done++
			}
		}
		return nil
	}, reactive.WithName("summary"))
	if err != nil {
		return fmt.Errorf("summary effect: %w", err)
	}

	r := rand.New(rand.NewPCG(cfg.seed, cfg.seed))
	for i := 0; i < cfg.writes; i++ {
		td := list[r.IntN(len(list))]
		td.SetDone(!td.Done())
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"target", "key", "dependents", "effects"})
	table.SetAutoWrapText(false)
	for _, entry := range rs.Snapshot() {
		table.Append([]string{
			strconv.FormatUint(uint64(entry.Target), 10),
			entry.Key,
			humanize.Comma(int64(len(entry.Effects))),
			strings.Join(entry.Effects, ", "),
		})
	}
	table.Render()

	stats := rs.Stats()
	fmt.Fprintf(w, "done: %d/%d\n", done, len(list))
	fmt.Fprintf(w, "renders: %s, summary runs: %s\n",
		humanize.Comma(int64(len(rendered))), humanize.Comma(int64(summary.Runs())))
	fmt.Fprintf(w, "targets: %s, keys: %s, edges: %s, wrappers: %s\n",
		humanize.Comma(int64(stats.Targets)),
		humanize.Comma(int64(stats.Keys)),
		humanize.Comma(int64(stats.Edges)),
		humanize.Comma(int64(stats.Wrappers)),
	)
	fmt.Fprintf(w, "fingerprint: %016x\n", rs.Fingerprint())
	return nil
}
