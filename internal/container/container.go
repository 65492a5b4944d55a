// Package container provides dependency injection for finsight. It
// centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"errors"
	"fmt"

	"fjacquet/finsight/internal/categorizer"
	"fjacquet/finsight/internal/config"
	"fjacquet/finsight/internal/insights"
	"fjacquet/finsight/internal/logging"
	"fjacquet/finsight/internal/models"
	"fjacquet/finsight/internal/store"
	"fjacquet/finsight/internal/voice"
)

// Option customises container construction.
type Option func(*options)

type options struct {
	logger      logging.Logger
	ui          voice.UI
	managerOpts []voice.ManagerOption
}

// WithLogger replaces the logger built from the log.* settings.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithUI routes executed voice commands to a presentation layer.
func WithUI(ui voice.UI) Option {
	return func(o *options) { o.ui = ui }
}

// WithManagerOptions forwards options to the voice session manager, e.g. a
// recognizer factory or a speaker.
func WithManagerOptions(opts ...voice.ManagerOption) Option {
	return func(o *options) { o.managerOpts = append(o.managerOpts, opts...) }
}

// Container holds all application dependencies. It is immutable after
// creation; dependencies are reached through getters.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	store      store.TransactionStore
	classifier *categorizer.Classifier
	engine     *insights.Engine
	matcher    *voice.Matcher
	executor   *voice.Executor
	manager    *voice.Manager
}

// NewContainer creates and wires all application dependencies:
// config → logger → store → classifier → insight engine → voice manager.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	txStore, err := store.New(cfg.Store.Backend, cfg.Store.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open transaction store: %w", err)
	}

	tables := categorizer.DefaultTables()
	if cfg.Voice.CategoriesFile != "" {
		tables, err = categorizer.LoadTables(cfg.Voice.CategoriesFile, logger)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("failed to load category tables: %w", err), txStore.Close())
		}
	}
	classifier := categorizer.NewClassifier(tables, logger)

	engine := insights.NewEngine(insights.Options{
		MinConfidence:      cfg.Insights.MinConfidence,
		MaxResults:         cfg.Insights.MaxResults,
		UnusualSpendingCap: cfg.Insights.UnusualSpendingCap,
	}, logger)

	matcher := voice.NewMatcher(classifier, logger)
	executor := voice.NewExecutor(txStore, o.ui, logger, voice.WithCurrency(cfg.Insights.CurrencySymbol))
	manager := voice.NewManager(matcher, executor, voice.ManagerConfig{
		ListenTimeout: cfg.ListenTimeout(),
		HistorySize:   cfg.Voice.HistorySize,
		HistoryDir:    cfg.Voice.HistoryDir,
	}, logger, o.managerOpts...)

	logger.Info("Container initialized successfully",
		logging.F(logging.FieldBackend, cfg.Store.Backend),
		logging.F("rules_count", len(engine.Rules())))

	return &Container{
		logger:     logger,
		config:     cfg,
		store:      txStore,
		classifier: classifier,
		engine:     engine,
		matcher:    matcher,
		executor:   executor,
		manager:    manager,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger { return c.logger }

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config { return c.config }

// GetStore returns the transaction store.
func (c *Container) GetStore() store.TransactionStore { return c.store }

// GetClassifier returns the category classifier.
func (c *Container) GetClassifier() *categorizer.Classifier { return c.classifier }

// GetEngine returns the insight engine.
func (c *Container) GetEngine() *insights.Engine { return c.engine }

// GetMatcher returns the voice pattern matcher.
func (c *Container) GetMatcher() *voice.Matcher { return c.matcher }

// GetExecutor returns the voice command executor.
func (c *Container) GetExecutor() *voice.Executor { return c.executor }

// GetVoiceManager returns the per-user voice session manager.
func (c *Container) GetVoiceManager() *voice.Manager { return c.manager }

// Profile returns the profile used when generating insights for userID.
func (c *Container) Profile(userID string) models.UserProfile {
	return models.UserProfile{UserID: userID, CurrencySymbol: c.config.Insights.CurrencySymbol}
}

// Close stops every voice session and releases the store.
func (c *Container) Close() error {
	c.manager.CloseAll()
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("failed to close transaction store: %w", err)
	}
	c.logger.Info("Container closed")
	return nil
}
