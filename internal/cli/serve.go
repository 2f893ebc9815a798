package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"classquiz-service/internal/app"
	"classquiz-service/internal/auth"
	"classquiz-service/internal/config"
	"classquiz-service/internal/infra/memory"
	pgstore "classquiz-service/internal/infra/postgres"
	rediscache "classquiz-service/internal/infra/redis"
	transport "classquiz-service/internal/transport/http"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewServeCmd builds the CLI subcommand to start the server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the quiz platform server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("jwt secret not configured")
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrations(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var (
		users     app.UserStore
		quizzes   app.QuizStore
		questions app.QuestionStore
		answers   app.AnswerStore
	)
	if pool != nil {
		users = pgstore.NewUserStore(pool)
		quizzes = pgstore.NewQuizStore(pool)
		questions = pgstore.NewQuestionStore(pool)
		answers = pgstore.NewAnswerStore(pool)
	} else {
		log.Printf("no postgres url configured, using in-memory stores")
		users = memory.NewUserStore()
		quizzes = memory.NewQuizStore()
		questions = memory.NewQuestionStore()
		answers = memory.NewAnswerStore()
	}

	cacheTTL := config.TTLDuration(cfg.Cache.TTL, 10*time.Minute)
	var keys app.AnswerKeyCache
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		keys = rediscache.NewAnswerKeyCache(redisClient, questions, cacheTTL)
	} else {
		keys = memory.NewAnswerKeyCache(questions, cacheTTL)
	}

	tokenTTL := config.TTLDuration(cfg.Auth.TokenTTL, time.Hour)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, tokenTTL)

	accountService := app.NewAccountService(users, tokens)
	quizService := app.NewQuizService(quizzes, questions)
	submissionService := app.NewSubmissionService(answers, keys)
	rankingService := app.NewRankingService(answers, users)

	handler := transport.NewHandler(accountService, quizService, submissionService, rankingService, tokens)
	router := transport.NewRouter(handler)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz platform on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
