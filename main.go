package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"
	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/constellation/internal/config"
	"github.com/iburimskiy/constellation/internal/engine"
	"github.com/iburimskiy/constellation/internal/game"
	"github.com/iburimskiy/constellation/internal/theme"
)

var log = logrus.StandardLogger()

func setupLogging(level string) {
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stderr)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.WithError(err).Warn("Unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
}

func openTheme(cfg config.Config) *theme.Store {
	pref := theme.SystemPreference()
	if cfg.PreferDark {
		pref = theme.Dark
	}
	path := cfg.ThemeFile
	if path == "" {
		p, err := theme.DefaultPath()
		if err != nil {
			log.WithError(err).Warn("No config directory, theme will not be saved")
		}
		path = p
	}
	s := theme.Open(path, pref)
	log.WithFields(logrus.Fields{"theme": s.Mode(), "path": path}).Debug("Theme loaded")
	return s
}

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	setupLogging(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	store := openTheme(cfg)

	if cfg.Headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		ctrl := engine.New(cfg, store, engine.NewRasterSurface)
		ctrl.Resize(cfg.Width, cfg.Height, cfg.Scale)
		err := engine.RunHeadless(ctx, ctrl, engine.HeadlessConfig{
			Hz:       cfg.Hz,
			Ticks:    cfg.Ticks,
			Snapshot: cfg.Snapshot,
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Fatal("Headless run failed")
		}
		return
	}

	ctrl := engine.New(cfg, store, game.NewSurface)
	if err := game.Run(cfg, ctrl, store); err != nil && !errors.Is(err, ebiten.Termination) {
		log.WithError(err).Error("Window closed with an error")
		_ = zenity.Error(err.Error(), zenity.Title(cfg.Title), zenity.ErrorIcon)
		os.Exit(1)
	}
}
