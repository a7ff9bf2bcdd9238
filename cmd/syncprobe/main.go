// Command syncprobe runs one fetch pass for a principal against the
// document store and prints the derived task views and the public feed.
// It exercises the full sync path end to end: store, orchestrator,
// dispatcher caches, view engine.
//
// Flags:
//
//	--principal  principal id to sign in as (required)
//	--period     view period to print: all, today, week, month (default: all)
//
// Requires DATABASE_DSN (or CONFIG_PATH) to be set.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/taranenko/taskfeed/internal/adapter/postgres"
	"github.com/taranenko/taskfeed/internal/app"
	"github.com/taranenko/taskfeed/internal/cache"
	"github.com/taranenko/taskfeed/internal/config"
	"github.com/taranenko/taskfeed/internal/domain"
	"github.com/taranenko/taskfeed/internal/syncer"
	"github.com/taranenko/taskfeed/internal/view"
	"github.com/taranenko/taskfeed/pkg/ctxutil"
)

func main() {
	principalFlag := flag.String("principal", "", "principal id to sign in as")
	periodFlag := flag.String("period", "all", "view period: all, today, week, month")
	flag.Parse()

	if *principalFlag == "" {
		log.Fatal("--principal is required")
	}
	period := view.Period(*periodFlag)
	switch period {
	case view.PeriodAll, view.PeriodToday, view.PeriodWeek, view.PeriodMonth:
	default:
		log.Fatalf("unknown period %q", *periodFlag)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("syncprobe starting", slog.String("version", app.BuildVersion()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	ctx = ctxutil.WithPrincipalID(ctx, *principalFlag)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	store := postgres.NewStore(pool)

	tasks := cache.New[domain.Task]()
	posts := cache.New[domain.Post]()
	profiles := cache.New[domain.UserProfile]()

	orch := syncer.New(store, tasks, posts, profiles, logger,
		syncer.WithFeedLimit(cfg.Sync.FeedLimit))
	if err := orch.SetPrincipal(ctx, *principalFlag); err != nil {
		logger.Error("fetch pass failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	engine := view.NewEngine(tasks, view.WithWeekStart(cfg.Sync.WeekStart))

	selected := engine.Query(period, true, view.SortAsc)
	fmt.Printf("Tasks (%s) for %s:\n", *periodFlag, *principalFlag)
	for _, t := range selected {
		printTask(t)
	}

	fmt.Printf("\nPublic feed (%d posts):\n", posts.Len())
	for _, p := range posts.All() {
		fmt.Printf("  [%s] %q by %s: %d likes, %d comments\n",
			time.UnixMilli(p.TimeCreated).Format("2006-01-02"),
			p.Title, p.UserName, len(p.Likes), len(p.Comments))
	}
}

func printTask(t domain.Task) {
	status := " "
	if t.IsComplete {
		status = "x"
	}
	fmt.Printf("  [%s] %s (due %s)\n",
		status, t.Title, time.UnixMilli(t.Deadline).Format("2006-01-02 15:04"))
}
