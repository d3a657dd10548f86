package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/config"
	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/share"
	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/state"
	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/ui"
)

func main() {
	discover := flag.Bool("discover", false, "list boards shared on the local network and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)
	defer log.Sync()

	if *discover {
		runDiscover(log)
		return
	}

	store := state.NewStore(log.Named("state"))

	var srv *share.Server
	if cfg.ShareEnabled {
		srv = share.NewServer(store, cfg.ShareAddr, log.Named("share"))
		go func() {
			if err := srv.Start(); err != nil {
				log.Error("share server stopped", zap.Error(err))
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				log.Warn("share server shutdown", zap.Error(err))
			}
		}()

		if cfg.MDNSEnabled {
			mdnsSrv, err := share.Advertise(share.Port(cfg.ShareAddr), log.Named("mdns"))
			if err != nil {
				log.Warn("mdns advertise failed", zap.Error(err))
			} else {
				defer mdnsSrv.Shutdown()
			}
		}
		log.Info("sharing enabled", zap.String("url", share.URL(cfg.ShareAddr)))
	}

	ui.RunApp(cfg, store, srv, log.Named("ui"))
}

func newLogger(level string) *zap.Logger {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// runDiscover performs one mDNS lookup and prints every board it finds.
func runDiscover(log *zap.Logger) {
	fmt.Println("Searching for boards on the local network...")
	found := 0
	err := share.Browse(func(addr string) {
		found++
		fmt.Printf("  http://%s\n", addr)
	})
	if err != nil {
		log.Warn("mdns lookup failed", zap.Error(err))
	}
	if found == 0 {
		fmt.Println("No boards found.")
	}
}
