package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tado3/Star-Space/internal/config"
	"github.com/Tado3/Star-Space/internal/lib/timeutil"
	"github.com/Tado3/Star-Space/internal/services/backup"
)

func printBanner(w io.Writer, started time.Time, hour, minute int, logFile string, testMode, daemon bool) {
	fmt.Fprintln(w, "==========================================")
	fmt.Fprintln(w, " Star Space - Monthly Backup Scheduler")
	fmt.Fprintln(w, "==========================================")
	fmt.Fprintf(w, " Started:   %s\n", started.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, " Schedule:  last day of month at %02d:%02d\n", hour, minute)
	fmt.Fprintf(w, " Log file:  %s\n", logFile)
	fmt.Fprintf(w, " Test mode: %v\n", testMode)
	fmt.Fprintf(w, " Daemon:    %v\n", daemon)
	fmt.Fprintln(w, "==========================================")
}

func main() {
	backupTime := flag.String("time", "23:00", "time of day (HH:MM) to run the monthly backup")
	daemon := flag.Bool("daemon", false, "run in the background of this process")
	logFile := flag.String("log-file", "monthly_backup.log", "path of the backup log file")
	testMode := flag.Bool("test-mode", false, "run a backup every minute instead of monthly")
	flag.Parse()

	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	hour, minute, err := timeutil.ParseClock(*backupTime)
	if err != nil {
		logger.Error("invalid -time value", slog.String("time", *backupTime), slog.Any("err", err))
		os.Exit(1)
	}

	printBanner(os.Stdout, time.Now(), hour, minute, *logFile, *testMode, *daemon)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := backup.NewRunner(cfg.StorageConnectionString, cfg.Backup, logger)
	scheduler := backup.NewScheduler(runner, logger, hour, minute, *testMode, *logFile)

	if *daemon {
		go func() {
			if err := scheduler.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("backup scheduler stopped with error", slog.Any("err", err))
			}
		}()

		// Keep the foreground responsive to signals while the loop
		// runs in the background.
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Info("backup scheduler stopped gracefully")
				return
			case <-ticker.C:
			}
		}
	}

	if err := scheduler.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("backup scheduler stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("backup scheduler stopped gracefully")
}
