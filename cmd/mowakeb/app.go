// ABOUTME: Builds the application graph from configuration
// ABOUTME: Selects the state backend, row store, object store, speech synthesizer and chatbot

package main

import (
	"context"
	"fmt"
	"time"

	"mowakeb-api/api"
	"mowakeb-api/core/audio"
	"mowakeb-api/core/chatbot"
	"mowakeb-api/core/interfaces"
	"mowakeb-api/core/session"
	"mowakeb-api/core/state"
	"mowakeb-api/core/summary"
	"mowakeb-api/core/tracker"
	"mowakeb-api/core/workers"
	"mowakeb-api/infrastructure/cache/gocache"
	"mowakeb-api/infrastructure/cache/memory"
	"mowakeb-api/infrastructure/cache/redis"
	sqlitecache "mowakeb-api/infrastructure/cache/sqlite"
	chatclient "mowakeb-api/infrastructure/chatbot"
	stdhttp "mowakeb-api/infrastructure/http/standard"
	"mowakeb-api/infrastructure/rowstore/sqlite"
	"mowakeb-api/infrastructure/supabase"
	"mowakeb-api/infrastructure/tts/google"
	httptts "mowakeb-api/infrastructure/tts/http"
	"mowakeb-api/pkg/config"
	"mowakeb-api/pkg/featureflags"
)

// audioCacheSweep is the cleanup interval of the in-process audio cache
const audioCacheSweep = 30 * time.Minute

type closer func() error

// application holds the wired services of one process
type application struct {
	cfg    *config.Config
	logger interfaces.Logger
	flags  *featureflags.EnvManager

	dispatcher *workers.Dispatcher
	sessions   *session.Service
	tracker    *tracker.Service
	search     *summary.SearchService
	results    *summary.ResultsService
	summaries  *summary.Service
	player     *audio.Player
	chat       *chatbot.Service

	// rows is set when the sqlite row store is selected
	rows *sqlite.Store

	closers []closer
}

func newApplication(ctx context.Context, cfg *config.Config, logger interfaces.Logger) (*application, error) {
	app := &application{cfg: cfg, logger: logger}
	ok := false
	defer func() {
		if !ok {
			app.shutdown(ctx)
		}
	}()

	app.flags = featureflags.NewEnvManager("FEATURE_", map[featureflags.FeatureFlag]bool{
		featureflags.LongForm:  cfg.Features.LongForm,
		featureflags.Audio:     cfg.Features.Audio,
		featureflags.Chatbot:   cfg.Features.Chatbot,
		featureflags.RateLimit: cfg.Features.RateLimit,
	})

	stateCache, err := app.openStateCache()
	if err != nil {
		return nil, err
	}
	store := state.NewStore(stateCache, logger, cfg.State.Namespace)

	httpClient := stdhttp.NewStandardHTTPClient(cfg.HTTP.Timeout)

	remote, papers, objects, err := app.openRowStore(httpClient)
	if err != nil {
		return nil, err
	}

	app.dispatcher = workers.NewDispatcher(logger, workers.DispatcherConfig{
		MaxWorkers:  cfg.Dispatch.Workers,
		QueueSize:   cfg.Dispatch.QueueSize,
		TaskTimeout: cfg.Dispatch.TaskTimeout,
	})
	app.dispatcher.Start()

	app.sessions = session.NewService(store)
	app.tracker = tracker.NewService(store, remote, app.dispatcher, logger)
	app.search = summary.NewSearchService(store)
	app.results = summary.NewResultsService(papers, nil, logger)
	app.summaries = summary.NewService(summary.Config{
		State:      store,
		Objects:    objects,
		HTTPClient: httpClient,
		Dispatcher: app.dispatcher,
		Tracker:    app.tracker,
		Logger:     logger,
		LongFormEnabled: func(ctx context.Context) bool {
			return app.flags.IsEnabled(ctx, featureflags.LongForm)
		},
	})

	tts, contentType, err := app.openSynthesizer(ctx, httpClient)
	if err != nil {
		return nil, err
	}
	audioCache := stateCache
	if cfg.State.Backend != "redis" {
		audioCache = gocache.NewCache(audioCacheSweep)
	}
	app.player = audio.NewPlayer(tts, audioCache, logger, audio.Config{
		ContentType: contentType,
		CacheTTL:    cfg.TTS.CacheTTL,
	})

	app.chat = chatbot.NewService(chatclient.NewClient(cfg.Chatbot.BaseURL, httpClient), logger)

	logger.Info("Application ready", map[string]interface{}{
		"state_backend": cfg.State.Backend,
		"row_store":     cfg.RowStore.Backend,
		"object_store":  objects != nil,
		"tts_provider":  cfg.TTS.Provider,
		"chatbot":       cfg.Chatbot.BaseURL != "",
	})
	ok = true
	return app, nil
}

func (a *application) openStateCache() (interfaces.Cache, error) {
	switch a.cfg.State.Backend {
	case "redis":
		c, err := redis.NewRedisCache(a.cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, c.Close)
		return c, nil
	case "sqlite":
		c, err := sqlitecache.NewSQLiteCache(a.cfg.State.SQLitePath, a.logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, c.Close)
		return c, nil
	case "gocache":
		return gocache.NewCache(10 * time.Minute), nil
	default:
		return memory.NewMemoryCache(), nil
	}
}

// openRowStore returns the tracker table, the papers table and the object
// store. Each is nil when not configured.
func (a *application) openRowStore(httpClient interfaces.HTTPClient) (interfaces.TrackerStore, interfaces.PaperStore, interfaces.ObjectStore, error) {
	var (
		remote  interfaces.TrackerStore
		papers  interfaces.PaperStore
		objects interfaces.ObjectStore
		hosted  *supabase.Client
	)

	if a.cfg.RowStore.Backend == "supabase" || a.cfg.Supabase.Bucket != "" {
		c, err := supabase.NewClient(supabase.Config{
			URL:          a.cfg.Supabase.URL,
			AnonKey:      a.cfg.Supabase.AnonKey,
			TrackerTable: a.cfg.Supabase.TrackerTable,
			PapersTable:  a.cfg.Supabase.PapersTable,
			Bucket:       a.cfg.Supabase.Bucket,
		}, httpClient, a.logger)
		if err != nil {
			return nil, nil, nil, err
		}
		hosted = c
	}

	switch a.cfg.RowStore.Backend {
	case "supabase":
		remote, papers = hosted, hosted
	case "sqlite":
		rows, err := sqlite.Open(a.cfg.RowStore.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		a.closers = append(a.closers, rows.Close)
		a.rows = rows
		remote, papers = rows, rows
	}

	if a.cfg.Supabase.Bucket != "" {
		objects = hosted
	}
	return remote, papers, objects, nil
}

func (a *application) openSynthesizer(ctx context.Context, httpClient interfaces.HTTPClient) (interfaces.SpeechSynthesizer, string, error) {
	switch a.cfg.TTS.Provider {
	case "http":
		return httptts.NewSynthesizer(a.cfg.TTS.URL, httpClient), "audio/mpeg", nil
	case "google":
		s, err := google.NewSynthesizer(ctx, google.Config{
			LanguageCode: a.cfg.TTS.LanguageCode,
			Voice:        a.cfg.TTS.Voice,
			Encoding:     a.cfg.TTS.Encoding,
		})
		if err != nil {
			return nil, "", fmt.Errorf("create google text-to-speech client: %w", err)
		}
		a.closers = append(a.closers, s.Close)
		return s, s.ContentType(), nil
	default:
		return nil, "", nil
	}
}

// services exposes the wired services to the HTTP layer
func (a *application) services() api.Services {
	return api.Services{
		Sessions: a.sessions,
		Tracker:  a.tracker,
		Search:   a.search,
		Results:  a.results,
		Summary:  a.summaries,
		Audio:    a.player,
		Chat:     a.chat,
	}
}

// shutdown waits for queued remote writes, then releases resources
func (a *application) shutdown(ctx context.Context) {
	if a.dispatcher != nil {
		if err := a.dispatcher.Drain(ctx); err != nil {
			a.logger.Warn("Remote writes still pending at shutdown", map[string]interface{}{
				"error": err.Error(),
			})
		}
		a.dispatcher.Stop()
	}
	a.close()
}

func (a *application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("Failed to close resource", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	a.closers = nil
}
