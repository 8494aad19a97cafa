package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"NewsPoster/internal/config"
	"NewsPoster/internal/infrastructure/llm"
	"NewsPoster/internal/infrastructure/newsapi"
	"NewsPoster/internal/infrastructure/scheduler"
	"NewsPoster/internal/infrastructure/storage"
	"NewsPoster/internal/infrastructure/twitter"
	"NewsPoster/internal/infrastructure/webnews"
	"NewsPoster/internal/logging"
	"NewsPoster/internal/ports"
	"NewsPoster/internal/source"
	"NewsPoster/internal/workflow"
)

// Application wires configs to the pipeline and lifecycle orchestration.
type Application struct {
	cfg        config.Config
	logger     *slog.Logger
	pipeline   *workflow.Pipeline
	repository ports.RunRepository
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	registry := source.NewRegistry()
	registry.Register(newsapi.NewClient(cfg.News.APIKey, nil))
	registry.Register(webnews.NewScanner(nil))

	src := source.NewRegistrySource(registry, cfg.Source.Provider, cfg.Source.Options,
		baseLogger.With("component", "source"))

	var rewriter ports.Rewriter
	if cfg.ChatGPT.APIKey != "" {
		rewriter = llm.NewChatGPTClient(cfg.ChatGPT)
	} else {
		baseLogger.Warn("chatgpt key missing, posts fall back to article titles")
	}

	var publisher ports.Publisher
	if cfg.Twitter.Configured() {
		publisher = twitter.NewPublisher(cfg.Twitter)
	} else if cfg.Run.AutoPublish {
		baseLogger.Warn("twitter credentials incomplete, publishing will fail")
	}

	pipeline := workflow.NewPipeline(baseLogger.With("component", "pipeline"),
		&workflow.FetchStage{Source: src, Limit: cfg.Run.FetchLimit, Logger: baseLogger.With("stage", "fetch")},
		&workflow.SelectStage{Logger: baseLogger.With("stage", "select")},
		&workflow.RewriteStage{Rewriter: rewriter, Logger: baseLogger.With("stage", "rewrite")},
		&workflow.PublishStage{Publisher: publisher, Logger: baseLogger.With("stage", "publish")},
	)

	var repository ports.RunRepository
	if cfg.Database.DSN != "" {
		db, err := storage.Open(cfg.Database.DSN)
		if err != nil {
			baseLogger.Warn("database unavailable, runs will not be persisted", "error", err)
		} else {
			repository = storage.NewPostgresRepository(db)
		}
	}

	return &Application{
		cfg:        cfg,
		logger:     baseLogger,
		pipeline:   pipeline,
		repository: repository,
	}
}

// Run executes a single pipeline run, or a recurring one when the
// scheduler interval is configured.
func (a *Application) Run(ctx context.Context) error {
	period := a.cfg.Scheduler.Period()
	if period <= 0 {
		return a.runOnce(ctx, time.Now())
	}

	driver := scheduler.NewIntervalScheduler(period)
	if err := driver.Start(ctx, func(trigger time.Time) {
		if err := a.runOnce(ctx, trigger); err != nil {
			a.logger.Error("scheduled run failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	<-ctx.Done()
	return driver.Stop(context.Background())
}

// runOnce owns one workflow state for its whole lifecycle: validate
// inputs, carry the state through the stages, report, persist.
func (a *Application) runOnce(ctx context.Context, trigger time.Time) error {
	state, err := workflow.NewState(a.cfg.Run.Topic, a.cfg.Run.AutoPublish, a.cfg.Run.PostCount)
	if err != nil {
		return fmt.Errorf("invalid run configuration: %w", err)
	}

	a.logger.Info("run started", "run_id", state.RunID, "topic", state.Topic,
		"auto_publish", state.AutoPublish, "post_count", state.PostCount,
		"triggered_at", trigger.Format(time.RFC3339))

	if err := a.pipeline.Run(ctx, state); err != nil {
		return fmt.Errorf("run %s: %w", state.RunID, err)
	}

	published := 0
	for _, result := range state.PublishResults {
		if result.Published() {
			published++
		}
	}
	a.logger.Info("run finished", "run_id", state.RunID,
		"posts_generated", len(state.RewrittenPosts), "posts_published", published)

	if a.repository != nil {
		record := workflow.BuildRunRecord(state, time.Now().UTC())
		if err := a.repository.SaveRun(ctx, record); err != nil {
			a.logger.Warn("run not persisted", "run_id", state.RunID, "error", err)
		}
	}

	return nil
}
