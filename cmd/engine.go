package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/content"
	"github.com/abhisek/lingua/internal/course"
	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/logger"
	"github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/rewards"
	"github.com/abhisek/lingua/internal/store"
)

// engine bundles everything a command needs to run the course.
type engine struct {
	store  *store.Store
	redis  *store.RedisKV
	log    *logger.Logger
	course *course.Service
	model  string
}

func (e *engine) Close() {
	if e.redis != nil {
		e.redis.Close()
	}
	e.store.Close()
	e.log.Sync()
}

// openEngine opens storage and builds the course service. When needLLM is
// false a missing provider is tolerated; such an engine must not generate.
func openEngine(cmd *cobra.Command, needLLM bool) (*engine, error) {
	ctx := cmd.Context()

	log, err := newLogger(cmd)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	e := &engine{store: st, log: log}

	var kv progress.KV = st.KV()
	if addr := resolveRedisAddr(cmd); addr != "" {
		rkv, err := store.OpenRedis(ctx, addr)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.redis = rkv
		kv = rkv
	}
	p := progress.Load(ctx, kv, log)

	provider, llmCfg, err := llm.NewProviderFromEnv(ctx, st.EventRepo(), log)
	switch {
	case err == nil:
		e.model = provider.ModelID()
		log.Debug("llm provider ready", "provider", llmCfg.Provider, "model", e.model)
	case needLLM:
		e.Close()
		if errors.Is(err, llm.ErrNoProvider) {
			return nil, fmt.Errorf("%w: set LINGUA_LLM_PROVIDER or a provider API key", err)
		}
		return nil, fmt.Errorf("LLM provider: %w", err)
	default:
		log.Debug("llm provider not configured", "error", err)
	}

	gen := content.New(provider, p, content.ConfigFromEnv(), log)

	cfg := course.DefaultConfig()
	cfg.Entitled = resolveEntitled(cmd)
	e.course = course.New(p, gen, rewards.NewLedger(st.EventRepo(), log), cfg, log)
	return e, nil
}
