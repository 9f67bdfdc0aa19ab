package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskboard/internal/board"
	"github.com/sandeepkv93/taskboard/internal/config"
	"github.com/sandeepkv93/taskboard/internal/logging"
	"github.com/sandeepkv93/taskboard/internal/storage"
	"github.com/sandeepkv93/taskboard/internal/store"
	"github.com/sandeepkv93/taskboard/internal/update"
)

type globalFlags struct {
	configPath string
	dbPath     string
	logFile    string
}

// app is everything a command needs once config, logging and storage are up.
type app struct {
	cfg     config.Config
	log     *log.Logger
	board   *board.Board
	closers []io.Closer
}

func openApp(ctx context.Context, flags globalFlags) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.dbPath != "" {
		cfg.DBPath = flags.dbPath
	}
	if flags.logFile != "" {
		cfg.LogFile = flags.logFile
	}

	logger, logCloser, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: logger, closers: []io.Closer{logCloser}}

	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.closers = append(a.closers, repo)

	st, err := store.New("")
	if err != nil {
		a.Close()
		return nil, err
	}
	if err := st.Set(board.PathStyleRules, cfg.StyleRules); err != nil {
		a.Close()
		return nil, err
	}
	if err := st.Set(board.PathAutoFocus, cfg.AutoFocus); err != nil {
		a.Close()
		return nil, err
	}

	a.board, err = board.Open(ctx, repo, st, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	logger.Info("taskboard started", "db", cfg.DBPath, "tasks", len(a.board.Tasks()))
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func runBoard(cmd *cobra.Command, flags globalFlags) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, flags)
	if err != nil {
		return err
	}
	defer a.Close()

	m, err := update.New(ctx, a.board, a.cfg, a.log)
	if err != nil {
		return err
	}
	defer m.Close()

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		a.log.Error("program exited", "err", err)
		return err
	}
	return nil
}
