package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/riskibarqy/stadium-matchmap/internal/app"
	"github.com/riskibarqy/stadium-matchmap/internal/config"
	"github.com/riskibarqy/stadium-matchmap/internal/platform/logging"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	if len(os.Args) < 2 {
		printUsage()
		return 2
	}
	cmd := strings.ToLower(strings.TrimSpace(os.Args[1]))
	if !isCommand(cmd) {
		printUsage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	logger := logging.NewConsole(cfg.LogLevel).Named("scraper")
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scraper, err := app.NewScraper(ctx, cfg, logger)
	if err != nil {
		logger.Error("build scraper", "error", err)
		return 1
	}
	defer func() {
		if err := scraper.Close(); err != nil {
			logger.Warn("close scraper", "error", err)
		}
	}()

	if err := run(ctx, scraper, cmd); err != nil {
		logger.Error("scrape failed", "command", cmd, "error", err)
		return 1
	}
	return 0
}

func isCommand(cmd string) bool {
	switch cmd {
	case "coordinates", "fixtures", "stadium-info", "all":
		return true
	default:
		return false
	}
}

func run(ctx context.Context, scraper *app.Scraper, cmd string) error {
	switch cmd {
	case "coordinates":
		rows, err := scraper.Sync.SyncCoordinates(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("coordinates: %d\n", len(rows))
	case "fixtures":
		items, err := scraper.Sync.SyncFixtures(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("fixtures: %d\n", len(items))
	case "stadium-info":
		infos, err := scraper.Sync.SyncStadiumInfo(ctx, nil)
		if err != nil {
			return err
		}
		fmt.Printf("stadium info: %d\n", len(infos))
	case "all":
		report, err := scraper.Sync.SyncAll(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("coordinates: %d\n", report.Coordinates)
		fmt.Printf("fixtures: %d\n", report.Fixtures)
		fmt.Printf("stadium info: %d\n", report.StadiumInfos)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "usage: %s <coordinates|fixtures|stadium-info|all>\n", filepath.Base(os.Args[0]))
	fmt.Fprintln(os.Stderr, "environment:")
	fmt.Fprintln(os.Stderr, "  SCRAPER_OUTPUT_DIR      directory for the CSV datasets (default data)")
	fmt.Fprintln(os.Stderr, "  SCRAPER_STORE_POSTGRES  also replace the Postgres tables named by DB_URL")
}
