package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/quizforge/quizforge/internal/ai"
	api "github.com/quizforge/quizforge/internal/api/http"
	"github.com/quizforge/quizforge/internal/auth"
	"github.com/quizforge/quizforge/internal/config"
	"github.com/quizforge/quizforge/internal/db"
	"github.com/quizforge/quizforge/internal/event"
	"github.com/quizforge/quizforge/internal/prompt"
	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/subject"
	"github.com/quizforge/quizforge/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- DB ---
	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	dbh, err := db.Open(dbCtx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("db open failed")
	}

	quizStore := quiz.NewSQLStore(dbh)
	subjectStore := subject.NewSQLStore(dbh)
	userStore := user.NewSQLStore(dbh)

	// --- Generation pipeline ---
	prompts, err := prompt.Load(cfg.PromptTemplatePath)
	if err != nil {
		log.Fatal().Err(err).Msg("prompt template load failed")
	}
	client, err := ai.NewOpenAIClient(cfg.OpenAIModel, cfg.OpenAIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("completion client init failed")
	}
	bus := event.NewBus(cfg.EventBuffer)
	svc := quiz.NewService(quizStore, subjectStore, userStore, client, prompts, bus,
		log.With().Str("component", "quiz").Logger(), cfg.CompletionTimeout)

	processor := quiz.NewProcessor(quizStore, bus, log.With().Str("component", "processor").Logger())
	go processor.Run(ctx)

	reaper := quiz.NewReaper(quizStore, cfg.ReaperInterval, cfg.ReaperMaxAge,
		log.With().Str("component", "reaper").Logger())
	go reaper.Run(ctx)

	// --- Auth ---
	authSvc := auth.NewService(cfg.AuthHMACSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/register", api.RegisterHandler(userStore, authSvc))
	r.Post("/auth/login", api.LoginHandler(userStore, authSvc))

	quizHandler := api.NewQuizHandler(log.With().Str("component", "http").Logger(), svc)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.Middleware(authSvc))

		pr.Get("/subjects", api.ListSubjectsHandler(subjectStore))
		pr.Get("/languages", api.ListLanguagesHandler(subjectStore))

		pr.Get("/users/theme", api.GetThemeHandler(userStore))
		pr.Put("/users/theme", api.SetThemeHandler(userStore))

		pr.Post("/quizzes", quizHandler.Create)
		pr.Get("/quizzes", quizHandler.List)
		pr.Get("/quizzes/{quizID}", quizHandler.Get)
		pr.Get("/quizzes/{quizID}/questions", quizHandler.Questions)
		pr.Post("/quizzes/{quizID}/attempts", quizHandler.Attempt)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("db", cfg.DBDriver).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}
