package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"sleigh-route-service/internal/adapters/csvfile"
	"sleigh-route-service/internal/adapters/distance"
	"sleigh-route-service/internal/config"
	"sleigh-route-service/internal/domain"
	"sleigh-route-service/internal/platform/logger"
	"sleigh-route-service/internal/services"
)

const (
	exitError          = 1
	exitWindowExceeded = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, time.Now)
	stop()
	os.Exit(code)
}

// run plans one route and returns the process exit status. Flags override the
// environment configuration.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, now func() time.Time) int {
	config.LoadDotEnv()
	cfg := config.Load()
	logger.InitWriter(stderr, cfg.LogLevel, cfg.LogPretty)

	fs := flag.NewFlagSet("planner", flag.ContinueOnError)
	fs.SetOutput(stderr)
	children := fs.String("children", cfg.Input.ChildrenPath, "children CSV file")
	articles := fs.String("articles", cfg.Input.ArticlesPath, "articles CSV file")
	specs := fs.String("specs", cfg.Input.SpecsPath, "sleigh specification CSV file")
	out := fs.String("out", "", "route output file (default <OUTPUT_DIR>/route_<timestamp>.csv)")
	improve := fs.Bool("improve", cfg.Planner.Improve, "shorten each trip with 2-opt")
	skip := fs.Bool("skip-undeliverable", cfg.Planner.SkipUndeliverable, "skip children whose article never fits the sleigh")
	strict := fs.Bool("strict", cfg.Planner.StrictWindow, "fail when the tour exceeds the delivery window")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return exitError
	}

	repo := csvfile.NewInputRepository(*children, *articles, *specs)
	planner := services.NewPlanner(
		distance.NewGeodesicDistanceProvider(),
		services.WithDepot(cfg.Planner.Depot),
		services.WithWindow(cfg.Planner.DeliveryWindow),
		services.WithWorkers(cfg.Planner.Workers),
		services.WithImprove(*improve),
		services.WithSkipUndeliverable(*skip),
		services.WithStrictWindow(*strict),
	)

	plan, err := services.PlanDeliveries(ctx, repo, planner)

	var wErr *domain.WindowExceededError
	if errors.As(err, &wErr) && plan != nil {
		log.Error().Object("summary", services.Summarize(plan)).Float64("required_speed_kmh", wErr.RequiredSpeedKmh).Msg(wErr.Error())
		return exitWindowExceeded
	}
	if err != nil {
		log.Error().Err(err).Msg("planning failed")
		return exitError
	}

	path := *out
	if path == "" {
		path = csvfile.DefaultRoutePath(cfg.Input.OutputDir, now())
	}
	if err := csvfile.SaveRoute(path, plan.Entries); err != nil {
		log.Error().Err(err).Msg("writing route failed")
		return exitError
	}

	log.Info().Object("summary", services.Summarize(plan)).Str("out", path).Msg("route planned")
	fmt.Fprintln(stdout, path)
	return 0
}
