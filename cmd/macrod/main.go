package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/WhiteMagic/macrod/internal/api"
	"github.com/WhiteMagic/macrod/internal/injector"
	"github.com/WhiteMagic/macrod/internal/macro"
	"github.com/WhiteMagic/macrod/internal/profile"
	"github.com/WhiteMagic/macrod/internal/trigger"
)

func main() {
	addr := flag.String("addr", ":8090", "HTTP listen address")
	profilePath := flag.String("profile", "configs/profile.yaml", "Path to profile YAML")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// ── Load profile ─────────────────────────────────────────────────────────
	loader, err := profile.NewLoader(*profilePath)
	if err != nil {
		slog.Error("failed to load profile", "err", err)
		os.Exit(1)
	}
	p := loader.Profile()
	if err := profile.Validate(p); err != nil {
		slog.Error("profile validation failed", "err", err)
		os.Exit(1)
	}
	slog.Info("profile loaded", "macros", len(p.Macros), "bindings", len(p.Bindings))

	// ── Manager and trigger router ───────────────────────────────────────────
	backend := injector.NewDryRun(logger)
	mgr := macro.NewManager(backend, macro.Config{
		ActionDelay: time.Duration(p.Engine.DefaultActionDelayMs) * time.Millisecond,
		Logger:      logger,
	})
	mgr.Start()

	router := trigger.NewRouter(mgr, logger)
	if err := router.Rebuild(p); err != nil {
		slog.Error("failed to build trigger bindings", "err", err)
		os.Exit(1)
	}

	// ── Hot-reload watcher ───────────────────────────────────────────────────
	loader.OnChange(func(newP *profile.Profile) {
		if err := profile.Validate(newP); err != nil {
			slog.Warn("hot-reload skipped: profile invalid", "err", err)
			return
		}
		if err := router.Rebuild(newP); err != nil {
			slog.Warn("hot-reload skipped: binding rebuild failed", "err", err)
			return
		}
		slog.Info("profile hot-reloaded", "macros", len(newP.Macros), "bindings", len(newP.Bindings))
	})
	stopWatch, err := loader.Watch()
	if err != nil {
		slog.Warn("profile watcher unavailable (hot-reload disabled)", "err", err)
	} else {
		defer stopWatch()
	}

	// ── HTTP server ──────────────────────────────────────────────────────────
	handler := api.New(mgr, router, loader)
	srv := &http.Server{
		Addr:         *addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down…")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutCancel()
	_ = srv.Shutdown(shutCtx) // stop accepting triggers first
	mgr.Stop()                // then signal in-flight macros to wind down
	slog.Info("goodbye")
}
