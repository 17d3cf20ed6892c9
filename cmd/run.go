package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/eliteprep/internal/app"
	"github.com/abhisek/eliteprep/internal/config"
	"github.com/abhisek/eliteprep/internal/logger"
	"github.com/abhisek/eliteprep/internal/store"
	"github.com/spf13/cobra"
)

var errNoAI = errors.New("AI features are unavailable: set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY")

// loadConfig reads the config file named by --config and applies --db.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Storage.Path = p
	}
	return cfg, nil
}

// loadServices builds the logger, storage and AI stack for a command.
// The caller must call the returned cleanup.
func loadServices(cmd *cobra.Command) (*app.Services, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Log.Options())
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	svc, err := app.Build(commandContext(cmd), cfg, log.With("command", cmd.CommandPath()))
	if err != nil {
		log.Sync()
		return nil, nil, err
	}
	return svc, func() {
		svc.Close()
		log.Sync()
	}, nil
}

// eventRepo returns the LLM event log, which only the SQLite store keeps.
func eventRepo(svc *app.Services) (store.EventRepo, error) {
	if svc.Events == nil {
		return nil, fmt.Errorf("the %s backend keeps no LLM event log", svc.Config.Storage.Backend)
	}
	return svc.Events, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// runApp launches the TUI.
func runApp(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := loadServices(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	addr, _ := cmd.Flags().GetString("metrics-addr")
	if addr == "" {
		addr = svc.Config.Metrics.Addr
	}
	if svc.LLMErr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "LLM provider not configured:", svc.LLMErr)
		fmt.Fprintln(cmd.ErrOrStderr(), "AI features will be unavailable.")
	}
	return app.Run(commandContext(cmd), svc, addr)
}
