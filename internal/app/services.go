package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/eliteprep/internal/config"
	"github.com/abhisek/eliteprep/internal/gateway"
	"github.com/abhisek/eliteprep/internal/llm"
	"github.com/abhisek/eliteprep/internal/logger"
	"github.com/abhisek/eliteprep/internal/metrics"
	"github.com/abhisek/eliteprep/internal/mistakes"
	"github.com/abhisek/eliteprep/internal/problemgen"
	"github.com/abhisek/eliteprep/internal/progress"
	"github.com/abhisek/eliteprep/internal/screens/home"
	"github.com/abhisek/eliteprep/internal/session"
	"github.com/abhisek/eliteprep/internal/store"
	"github.com/abhisek/eliteprep/internal/tutor"
)

// Services is everything the TUI and the subcommands share. Gateway is
// always set; Generator, Tutor and Machine are nil when no AI provider is
// configured. Events is nil for the memory backend.
type Services struct {
	Config  *config.Config
	Log     *logger.Logger
	Metrics *metrics.Metrics

	KV       store.KV
	Events   store.EventRepo
	Mistakes *mistakes.Ledger
	Topics   *progress.Tracker

	Gateway   *gateway.Gateway
	Generator *problemgen.LLMGenerator
	Tutor     *tutor.Tutor
	Machine   *session.Machine

	// LLMErr explains why the AI features are off, if they are.
	LLMErr error

	closers []func() error
}

// Build opens storage and wires the generation stack from cfg.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Services, error) {
	s := &Services{
		Config:  cfg,
		Log:     log,
		Metrics: metrics.New(),
	}

	if err := s.openStorage(ctx); err != nil {
		s.Close()
		return nil, err
	}

	var err error
	if s.Mistakes, err = mistakes.Open(ctx, s.KV, log); err != nil {
		s.Close()
		return nil, fmt.Errorf("load mistakes: %w", err)
	}
	if s.Topics, err = progress.Open(ctx, s.KV, log); err != nil {
		s.Close()
		return nil, fmt.Errorf("load completed topics: %w", err)
	}

	var provider llm.Provider
	if lc, ok := cfg.LLM.Resolve(); !ok {
		s.LLMErr = errors.New("no API key configured")
	} else if provider, err = llm.NewProvider(ctx, lc, llm.Deps{Events: s.Events, Log: log, Metrics: s.Metrics}); err != nil {
		s.LLMErr = err
		provider = nil
	}
	if s.LLMErr != nil {
		log.Warn("AI features disabled", "reason", s.LLMErr)
	}

	s.Gateway = gateway.New(provider, gateway.DefaultConfig())
	if s.Gateway.Available() {
		s.Generator = problemgen.New(s.Gateway, problemgen.DefaultConfig())
		s.Tutor = tutor.New(s.Gateway, log)
		s.Machine = session.New(cfg.Quiz.Session(), session.Deps{
			Generator: s.Generator,
			Store:     s.KV,
			Mistakes:  s.Mistakes,
			Topics:    s.Topics,
			Log:       log,
			Metrics:   s.Metrics,
		})
	}
	return s, nil
}

func (s *Services) openStorage(ctx context.Context) error {
	sc := s.Config.Storage
	if sc.Backend == "memory" {
		s.KV = store.NewMemoryKV()
		return nil
	}

	// The event log always lives in SQLite; Redis only replaces the
	// key/value side.
	path := sc.Path
	if path == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		path = p
	} else if err := store.EnsureDir(path); err != nil {
		return fmt.Errorf("create DB dir: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	s.closers = append(s.closers, st.Close)
	s.Events = st.EventRepo()
	s.KV = st.KV()

	if sc.Backend == "redis" {
		rkv, err := store.OpenRedis(ctx, store.RedisOptions{
			Addr:     sc.Redis.Addr,
			Password: sc.Redis.Password,
			DB:       sc.Redis.DB,
			Prefix:   sc.Redis.Prefix,
		})
		if err != nil {
			return fmt.Errorf("open redis: %w", err)
		}
		s.closers = append(s.closers, rkv.Close)
		s.KV = rkv
	}
	s.Log.Info("storage opened", "backend", sc.Backend, "path", path)
	return nil
}

// HomeDeps returns the hub's collaborators.
func (s *Services) HomeDeps() home.Deps {
	return home.Deps{
		Machine:  s.Machine,
		Mistakes: s.Mistakes,
		Topics:   s.Topics,
		Tutor:    s.Tutor,
		Events:   s.Events,
	}
}

// Close stops the session and releases storage in reverse order of opening.
func (s *Services) Close() {
	if s.Machine != nil {
		s.Machine.Leave()
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.Log.Warn("close failed", "error", err)
		}
	}
	s.closers = nil
}
