package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"tubetutor/domain/repository"
	"tubetutor/infrastructure/cache"
	"tubetutor/infrastructure/clients/captions"
	"tubetutor/infrastructure/clients/genai"
	youtubeclient "tubetutor/infrastructure/clients/youtube"
	"tubetutor/infrastructure/configuration"
	"tubetutor/infrastructure/logger"
	"tubetutor/infrastructure/persistence"
	httpHandler "tubetutor/interfaces/http"
	"tubetutor/server"
	"tubetutor/usecase"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App

	store, storageDriver := initiateStorage(ctx)
	logger.GetLogger().WithField("driver", storageDriver).Info("Storage initialized")

	ttl := time.Duration(configuration.C.Cache.TTLDays) * 24 * time.Hour
	studyCache := cache.NewStudyCache(store, ttl)
	courseRepository := persistence.NewCourseRepository(store)

	// Caption sources in priority order: captions API first, watch page scrape
	// as fallback.
	captionSources := []repository.ICaptionSource{
		captions.NewAPISource(configuration.C.Captions.Endpoint, configuration.C.Captions.LangCode),
		captions.NewWatchPageSource(configuration.C.Captions.LangCode),
	}

	// AI capabilities are optional: without a model runtime the service still
	// serves enrollment and transcripts.
	var summarizer repository.ISummarizer
	var languageModel repository.ILanguageModel
	if configuration.C.GenAI.Host != "" {
		genaiConfig := genai.Config{Host: configuration.C.GenAI.Host, Model: configuration.C.GenAI.Model}
		summarizer = genai.NewSummarizer(genaiConfig)
		languageModel = genai.NewLanguageModel(genaiConfig)
		logger.GetLogger().WithField("host", configuration.C.GenAI.Host).
			WithField("model", configuration.C.GenAI.Model).Info("Model runtime configured")
	} else {
		logger.GetLogger().Info("No model runtime configured - AI features will be disabled")
	}

	// Playlist directory is optional: enrollment falls back to scraped data.
	var directory repository.IPlaylistDirectory
	yt := configuration.C.YouTube
	if yt.APIKey != "" || (yt.AccessToken != "" && yt.RefreshToken != "") {
		dir, err := youtubeclient.NewPlaylistDirectory(ctx, &youtubeclient.Config{
			ClientID:     yt.ClientID,
			ClientSecret: yt.ClientSecret,
			RedirectURL:  yt.RedirectURI,
			AccessToken:  yt.AccessToken,
			RefreshToken: yt.RefreshToken,
			APIKey:       yt.APIKey,
		})
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Playlist directory not available - continuing without metadata enrichment")
		} else {
			directory = dir
		}
	}

	var courseUsecase usecase.ICourseUsecase
	if directory != nil {
		courseUsecase = usecase.NewCourseUsecase(courseRepository, directory)
	} else {
		courseUsecase = usecase.NewCourseUsecase(courseRepository)
	}
	transcriptUsecase := usecase.NewTranscriptUsecase(studyCache, captionSources)
	notesUsecase := usecase.NewNotesUsecase(studyCache, transcriptUsecase, summarizer)
	quizUsecase := usecase.NewQuizUsecase(studyCache, transcriptUsecase, languageModel)
	chatUsecase := usecase.NewChatUsecase(languageModel)

	courseHandler := httpHandler.NewCourseHandler(courseUsecase)
	studyHandler := httpHandler.NewStudyHandler(transcriptUsecase, notesUsecase, quizUsecase)
	chatHandler := httpHandler.NewChatHandler(chatUsecase)
	healthHandler := httpHandler.NewHealthHandler(storageDriver, summarizer, languageModel)

	router := server.InitiateRouter(courseHandler, studyHandler, chatHandler, healthHandler)

	port := app.Port
	logger.GetLogger().WithFields(map[string]interface{}{"port": port, "tls": app.TLSEnabled}).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
			// Streaming chat responses have no bounded duration.
			ReadTimeout:  0,
			WriteTimeout: 0,
		}
		if app.TLSEnabled {
			cert := app.TLSCertFile
			key := app.TLSKeyFile
			if cert == "" || key == "" {
				logger.GetLogger().Error("TLS enabled but cert or key path empty; falling back to HTTP")
				if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			}
			if err := httpServer.ListenAndServeTLS(cert, key); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// initiateStorage opens the configured key-value backend and degrades to the
// next simpler one when it is unreachable: redis/postgres fall back to
// sqlite, sqlite falls back to memory.
func initiateStorage(ctx context.Context) (repository.IKeyValueStore, string) {
	switch configuration.C.Storage.Driver {
	case "redis":
		client, err := cache.NewCache(
			ctx,
			fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
			configuration.C.RedisClient.Username,
			configuration.C.RedisClient.Password,
		)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Redis not available - falling back to sqlite storage")
			return initiateSQLite(configuration.C.Storage.SQLitePath)
		}
		return cache.NewRedisStore(client), "redis"
	case "postgres":
		db, err := persistence.NewPostgreSQLDB()
		if err == nil {
			err = persistence.EnsureStorageSchema(db)
		}
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("PostgreSQL not available - falling back to sqlite storage")
			return initiateSQLite(configuration.C.Storage.SQLitePath)
		}
		return persistence.NewPostgresStore(db), "postgres"
	case "memory":
		return cache.NewMemoryStore(), "memory"
	default:
		return initiateSQLite(configuration.C.Storage.SQLitePath)
	}
}

func initiateSQLite(path string) (repository.IKeyValueStore, string) {
	db, err := persistence.NewSQLiteDB(path)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("SQLite not available - falling back to in-memory storage")
		return cache.NewMemoryStore(), "memory"
	}
	return persistence.NewSQLiteStore(db), "sqlite"
}
