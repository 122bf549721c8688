package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/Zuo-Peng/epoch-converter/internal/app"
	"github.com/Zuo-Peng/epoch-converter/internal/config"
	"github.com/Zuo-Peng/epoch-converter/internal/logging"
	"github.com/Zuo-Peng/epoch-converter/internal/render"
	"github.com/Zuo-Peng/epoch-converter/internal/store"
	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

// env is what every stateful command needs: config, logger, the snapshot
// database and the state container on top of it.
type env struct {
	cfg   *config.Config
	log   *logging.Logger
	db    *store.DB
	store *app.Store
}

// openEnv loads config, opens the database and restores the saved state.
// quiet suppresses console logging for commands that own the terminal.
func openEnv(quiet bool) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var console io.Writer = os.Stderr
	if quiet {
		console = nil
	}
	log, err := logging.New(cfg.Log, console)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := store.OpenDB(cfg.DBPath, log.Logger)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("open db: %w", err)
	}

	st := app.New(
		app.WithPersister(db),
		app.WithLogger(log.Logger),
		app.WithDefaults(seedFromConfig(cfg)),
	)

	e := &env{cfg: cfg, log: log, db: db, store: st}
	if err := e.applyFlags(); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

// seedFromConfig fills the first-run settings. A saved snapshot overrides
// them.
func seedFromConfig(cfg *config.Config) func(*app.State) {
	return func(s *app.State) {
		s.CurrentUnit = cfg.Unit()
		if cfg.DefaultTimezone != "" {
			s.DefaultTimezone = cfg.DefaultTimezone
		}
		s.ShowRelativeTime = cfg.ShowRelativeTime
		s.MaxHistoryItems = cfg.MaxHistoryItems
	}
}

func (e *env) applyFlags() error {
	if flagUnit != "" {
		u, err := timestamp.ParseUnit(flagUnit)
		if err != nil {
			return err
		}
		if err := e.store.SetUnit(u); err != nil {
			return err
		}
	}
	if flagTZ != "" {
		if err := e.store.SetDefaultTimezone(flagTZ); err != nil {
			return err
		}
	}
	return nil
}

func (e *env) Close() {
	if err := e.db.Close(); err != nil {
		e.log.Warn().Err(err).Msg("close db")
	}
	e.log.Close()
}

func (e *env) renderOpts() render.Options {
	return render.Options{
		Color:        useColor(),
		Width:        termWidth(),
		ShowRelative: e.store.State().ShowRelativeTime,
	}
}

func useColor() bool {
	return !flagNoColor && term.IsTerminal(int(os.Stdout.Fd()))
}

func termWidth() int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return 0
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return w
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// resolveUnit is the --unit flag when set, else fallback.
func resolveUnit(fallback timestamp.Unit) (timestamp.Unit, error) {
	if flagUnit == "" {
		return fallback, nil
	}
	return timestamp.ParseUnit(flagUnit)
}
