package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kisanportal/kisan/internal/ambient"
	"github.com/kisanportal/kisan/internal/assistant"
	"github.com/kisanportal/kisan/internal/config"
	"github.com/kisanportal/kisan/internal/debounce"
	"github.com/kisanportal/kisan/internal/market"
	"github.com/kisanportal/kisan/internal/notify"
	"github.com/kisanportal/kisan/internal/prefs"
	"github.com/kisanportal/kisan/internal/state"
	"github.com/kisanportal/kisan/internal/ui"
)

// Options configure the kisan application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses the config's prefs_file
	PollEvery  int    // seconds; zero uses the config's poll_seconds
	Debug      bool
}

// LoadConfig reads the config file and applies command-line overrides.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if opts.PrefsPath != "" {
		cfg.PrefsFile = opts.PrefsPath
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = time.Duration(opts.PollEvery) * time.Second
	}
	return cfg, nil
}

// Run boots the kisan TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := NewLogger(cfg.LogFile, opts.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	marketClient, err := market.NewClient(cfg.MarketAPI, cfg.APIToken)
	if err != nil {
		return fmt.Errorf("init market client: %w", err)
	}

	var asker assistant.Asker
	if client, err := assistant.NewClient(cfg.AssistantAPI, cfg.APIToken, cfg.Region); err != nil {
		logger.Warn("assistant disabled", zap.Error(err))
	} else {
		asker = client
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	schemes := ui.NewSchemeRelay()
	changes := ui.NewSignal()

	prefStore := OpenPrefs(cfg, schemes, logger)
	prefStore.Initialize()
	defer func() { _ = prefStore.Close() }()

	toasts := notify.NewQueue(
		notify.WithDefaultDuration(cfg.ToastDuration),
		notify.WithOnChange(changes.Notify),
		notify.WithLogger(logger.Named("notify")),
	)
	defer toasts.Close()

	store := state.NewStore(cfg.DefaultCommodity)
	search := NewSearch(ctx, SearchDeps{
		Store:    store,
		Client:   marketClient,
		Notifier: toasts,
		Changes:  changes,
		Delay:    cfg.Debounce,
		Logger:   logger.Named("search"),
	})
	defer search.Close()

	logger.Info("starting",
		zap.String("market_api", marketClient.BaseURL()),
		zap.String("commodity", store.Commodity()),
		zap.Duration("poll", cfg.PollInterval),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return Poll(gctx, store, marketClient, cfg.PollInterval, logger.Named("poller"))
	})
	g.Go(func() error {
		// Quitting the UI stops the poller.
		defer cancel()
		return ui.Run(ui.Options{
			Context:   gctx,
			Store:     store,
			Prefs:     prefStore,
			Schemes:   schemes,
			Changes:   changes,
			Toasts:    toasts,
			Search:    search,
			Assistant: asker,
			Config:    &cfg,
			Logger:    logger.Named("ui"),
		})
	})
	return g.Wait()
}

// OpenPrefs builds the preference store over the prefs file and the
// appearance file. A prefs file that cannot be opened leaves the store in
// memory for the session. The caller runs Initialize and Close.
func OpenPrefs(cfg config.Config, presenter prefs.Presenter, logger *zap.Logger) *prefs.Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	var storage prefs.Storage
	if fs, err := prefs.NewFileStorage(cfg.PrefsFile); err != nil {
		logger.Warn("preferences will not be saved", zap.Error(err))
	} else {
		storage = fs
	}

	var source ambient.Source = ambient.Terminal{}
	if cfg.AppearanceFile != "" {
		source = ambient.NewFileSource(cfg.AppearanceFile, ambient.Terminal{}, logger.Named("ambient"))
	}

	return prefs.NewStore(prefs.Options{
		Storage:   storage,
		Source:    source,
		Presenter: presenter,
		Logger:    logger.Named("prefs"),
	})
}

// SearchDeps are the collaborators of the debounced commodity search.
type SearchDeps struct {
	Store    *state.Store
	Client   market.PriceFetcher
	Notifier notify.Notifier
	Changes  *ui.Signal
	Delay    time.Duration
	Logger   *zap.Logger
}

// NewSearch wires the debounce coordinator to the market client. Dispatching
// a query switches the tracked commodity; a settled result lands in the store
// and failures surface as error toasts.
func NewSearch(ctx context.Context, deps SearchDeps) *ui.Search {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	notifier := notify.Fallback(deps.Notifier, logger)
	wake := func() {
		if deps.Changes != nil {
			deps.Changes.Notify()
		}
	}

	fetch := func(ctx context.Context, commodity string) (market.PriceSeries, error) {
		return deps.Client.FetchPrices(ctx, market.PriceQuery{Commodity: commodity})
	}

	return debounce.New(ctx, fetch, debounce.Options[string, market.PriceSeries]{
		Delay:  deps.Delay,
		Logger: logger,
		OnDispatch: func(commodity string) {
			deps.Store.SetCommodity(commodity)
			wake()
		},
		OnSettle: func(res debounce.Result[string, market.PriceSeries]) {
			defer wake()
			if res.Err != nil {
				logger.Warn("search failed", zap.String("commodity", res.Input), zap.Error(res.Err))
				deps.Store.Update(res.Input, nil, res.Err)
				notifier.Error(fmt.Sprintf("%s: %v", res.Input, res.Err))
				return
			}
			deps.Store.Update(res.Input, &res.Value, nil)
			if len(res.Value.Records) == 0 {
				notifier.Warning(fmt.Sprintf("no prices for %q", res.Input))
			}
		},
	})
}
