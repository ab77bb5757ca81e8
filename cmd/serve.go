package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"prepdeck/internal/assess"
	"prepdeck/internal/config"
	"prepdeck/internal/interview"
	"prepdeck/internal/llm"
	"prepdeck/internal/profile"
	"prepdeck/internal/question"
	"prepdeck/internal/salary"
	"prepdeck/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The service runs without a model: scoring falls back to the local
	// evaluator and chat serves canned responses.
	var provider llm.Provider
	llmCfg, found, err := llm.ResolveConfig()
	if err != nil {
		return fmt.Errorf("resolve LLM config: %w", err)
	}
	if found {
		provider, err = llm.NewProvider(cmd.Context(), llmCfg, log)
		if err != nil {
			return fmt.Errorf("create LLM provider: %w", err)
		}
		log.Info("llm provider ready",
			zap.String("provider", llmCfg.Provider),
			zap.String("model", provider.ModelID()))
	} else {
		log.Warn("no LLM credentials found, running with local scoring only")
	}

	var source question.Source
	var bank *question.Bank
	if cfg.Questions.Path != "" {
		bank, err = question.NewBankFromFile(cfg.Questions.Path)
	} else {
		bank, err = question.NewBank()
	}
	if err != nil {
		return fmt.Errorf("load question bank: %w", err)
	}
	source = bank
	if cfg.Questions.Generate && provider != nil {
		source = question.NewGenerator(provider, bank, question.DefaultGeneratorConfig(), log)
	}

	var oracle assess.Oracle = assess.NewSimilarityOracle()
	if provider != nil {
		oracle = assess.NewLLMOracle(provider, oracle, assess.DefaultOracleConfig(), log)
	}

	store, err := profile.Open(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("open profile store: %w", err)
	}
	defer store.Close()
	profiles := profile.NewRepo(store, nil)

	mgrCfg := interview.DefaultConfig()
	mgrCfg.DefaultCount = cfg.Interview.DefaultCount
	mgrCfg.DefaultSeconds = cfg.Interview.DefaultSeconds
	mgrCfg.MaxCount = cfg.Interview.MaxCount
	mgrCfg.OracleTimeout = time.Duration(cfg.Interview.OracleTimeoutSecs) * time.Second
	manager := interview.NewManager(source, oracle, profiles, mgrCfg, nil, log)
	defer manager.Shutdown()

	estimator := salary.NewEstimator(nil)
	estimator.DefaultCountry = cfg.Salary.DefaultCountry

	handlers := server.NewHandlers(manager, estimator, profiles, provider, log)
	srv := server.New(cfg.Server.Addr, handlers.Routes(), log)

	janitorCtx, cancelJanitor := context.WithCancel(context.Background())
	defer cancelJanitor()
	maxIdle := time.Duration(cfg.Interview.SessionIdleMinutes) * time.Minute
	go manager.RunJanitor(janitorCtx, time.Minute, maxIdle)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
