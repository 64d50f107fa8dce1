package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/pawsitive/mathcat/internal/app"
	"github.com/pawsitive/mathcat/internal/config"
	"github.com/pawsitive/mathcat/internal/homework"
	"github.com/pawsitive/mathcat/internal/llm"
	"github.com/pawsitive/mathcat/internal/logger"
	"github.com/pawsitive/mathcat/internal/practice"
	"github.com/pawsitive/mathcat/internal/problemgen"
	"github.com/pawsitive/mathcat/internal/quota"
	"github.com/pawsitive/mathcat/internal/store"
	"github.com/pawsitive/mathcat/internal/tutor"
)

// runtime is everything a command needs, built from flags and config.
type runtime struct {
	cfg      *config.Config
	log      *logger.Logger
	store    *store.Store
	provider llm.Provider
	practice *practice.Service
	chat     *tutor.Chat
	homework *homework.Service
	redis    *redis.Client
	userID   string
}

type setupOptions struct {
	// logToFile sends log lines next to the database instead of stderr.
	logToFile bool
	// withLLM builds the provider and the services that need it.
	withLLM bool
}

// setup loads configuration, opens the store and wires the services.
// Callers must call Close.
func setup(cmd *cobra.Command, opts setupOptions) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	st, dbPath, err := openStore(cmd, cfg)
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg, dbPath, opts.logToFile)
	if err != nil {
		st.Close()
		return nil, err
	}

	rt := &runtime{
		cfg:    cfg,
		log:    log,
		store:  st,
		userID: resolveUser(cmd, cfg.Player.DefaultUserID),
	}

	var genOpts []problemgen.Option
	if opts.withLLM {
		provider, err := llm.NewProviderFromEnv(cmd.Context(), st.EventRepo(), log)
		switch {
		case errors.Is(err, llm.ErrNotConfigured):
			log.Info("LLM provider not configured; AI features disabled")
		case err != nil:
			log.Warn("LLM provider unavailable", "error", err)
		default:
			rt.provider = provider
			genOpts = append(genOpts, problemgen.WithLLM(problemgen.NewLLMGenerator(provider, problemgen.DefaultConfig())))
		}
	}

	gen := problemgen.New(nil, nil, genOpts...)
	rt.practice = practice.NewService(st, gen, practice.WithLogger(log))
	rt.chat = tutor.NewChat(st, gen, tutor.WithLogger(log))

	if rt.provider != nil {
		limiter, err := rt.newLimiter(cmd.Context())
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.homework = homework.NewService(rt.provider,
			homework.WithLimiter(limiter),
			homework.WithLogger(log),
			homework.WithMaxTokens(cfg.Homework.MaxTokens),
			homework.WithHistoryWindow(cfg.Homework.HistoryWindow),
		)
	}
	return rt, nil
}

// openStore opens the configured database. An explicit --db flag always
// means SQLite.
func openStore(cmd *cobra.Command, cfg *config.Config) (*store.Store, string, error) {
	if p, _ := cmd.Flags().GetString("db"); p == "" && cfg.Database.Driver == store.DriverPostgres {
		st, err := store.OpenDriver(cmd.Context(), store.DriverPostgres, cfg.Database.DSN)
		if err != nil {
			return nil, "", fmt.Errorf("open database: %w", err)
		}
		return st, "", nil
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, "", fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, "", fmt.Errorf("open database: %w", err)
	}
	return st, dbPath, nil
}

// newLogger honors MATHCAT_LOG_FILE. Otherwise the TUI logs to
// mathcat.log beside the database and everything else logs to stderr.
func newLogger(cfg *config.Config, dbPath string, toFile bool) (*logger.Logger, error) {
	path := cfg.Log.File
	if path == "" && toFile {
		dir := os.TempDir()
		if dbPath != "" {
			dir = filepath.Dir(dbPath)
		}
		path = filepath.Join(dir, "mathcat.log")
	}
	if path != "" {
		return logger.NewFile(cfg.Log.Mode, path)
	}
	return logger.New(cfg.Log.Mode)
}

// newLimiter uses Redis when enabled so every server shares one quota.
func (rt *runtime) newLimiter(ctx context.Context) (quota.Limiter, error) {
	limit := rt.cfg.Homework.DailyLimit
	if !rt.cfg.Redis.Enabled {
		return quota.NewMemory(limit), nil
	}
	client, err := quota.Dial(ctx, rt.cfg.Redis.Address, rt.cfg.Redis.Password, rt.cfg.Redis.DB)
	if err != nil {
		return nil, err
	}
	rt.redis = client
	return quota.NewRedis(client, limit), nil
}

func (rt *runtime) Close() {
	if rt.redis != nil {
		rt.redis.Close()
	}
	rt.store.Close()
	rt.log.Sync()
}

// runApp launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := setup(cmd, setupOptions{logToFile: true, withLLM: true})
	if err != nil {
		return err
	}
	defer rt.Close()

	return app.Run(app.Options{
		Practice: rt.practice,
		Chat:     rt.chat,
		UserID:   rt.userID,
	})
}
