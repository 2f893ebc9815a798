package integration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"classquiz-service/internal/app"
	"classquiz-service/internal/auth"
	"classquiz-service/internal/domain"
	pgstore "classquiz-service/internal/infra/postgres"
	pgmigrations "classquiz-service/internal/infra/postgres/migrations"
	rediscache "classquiz-service/internal/infra/redis"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

func TestQuizPlatformEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	applyMigrations(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}

	users := pgstore.NewUserStore(pool)
	quizzes := pgstore.NewQuizStore(pool)
	questions := pgstore.NewQuestionStore(pool)
	answers := pgstore.NewAnswerStore(pool)
	keys := rediscache.NewAnswerKeyCache(redisClient, questions, 5*time.Minute)

	tokens := auth.NewTokenManager("integration-secret", time.Hour)
	accounts := app.NewAccountService(users, tokens)
	quizService := app.NewQuizService(quizzes, questions)
	submissions := app.NewSubmissionService(answers, keys)
	ranking := app.NewRankingService(answers, users)

	// Register a teacher and a student; the duplicate registration loses
	// on the unique index.
	teacherIn := app.RegisterInput{
		FullName: "Alice Teacher", Email: "alice@example.com",
		Password: "secret123", ConfirmPassword: "secret123", Role: domain.RoleTeacher,
	}
	if err := accounts.Register(ctx, teacherIn); err != nil {
		t.Fatalf("register teacher: %v", err)
	}
	if err := accounts.Register(ctx, teacherIn); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected duplicate email error, got %v", err)
	}
	if err := accounts.Register(ctx, app.RegisterInput{
		FullName: "Sam Student", Email: "sam@example.com",
		Password: "secret123", ConfirmPassword: "secret123", Role: domain.RoleStudent,
	}); err != nil {
		t.Fatalf("register student: %v", err)
	}

	_, teacher, err := accounts.Login(ctx, "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("login teacher: %v", err)
	}
	_, student, err := accounts.Login(ctx, "sam@example.com", "secret123")
	if err != nil {
		t.Fatalf("login student: %v", err)
	}

	// Two questions under one title create exactly one quiz.
	q1, err := quizService.CreateQuestion(ctx, app.CreateQuestionInput{
		QuizTitle: "Sports", Text: "How many players in a soccer team?",
		Options: []string{"9", "10", "11", "12"}, CorrectOption: 2,
		ExamDuration: 10, CreatedBy: teacher.ID,
	})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	q2, err := quizService.CreateQuestion(ctx, app.CreateQuestionInput{
		QuizTitle: "Sports", Text: "How long is a marathon in km?",
		Options: []string{"40", "41", "42", "43"}, CorrectOption: 2,
		ExamDuration: 10, CreatedBy: teacher.ID,
	})
	if err != nil {
		t.Fatalf("create second question: %v", err)
	}
	if q1.QuizID != q2.QuizID {
		t.Fatalf("expected both questions on one quiz, got %s and %s", q1.QuizID, q2.QuizID)
	}
	allQuizzes, err := quizService.ListQuizzes(ctx)
	if err != nil {
		t.Fatalf("list quizzes: %v", err)
	}
	if len(allQuizzes) != 1 {
		t.Fatalf("expected one quiz, got %d", len(allQuizzes))
	}

	// One correct, one wrong.
	if err := submissions.SubmitAnswers(ctx, student.ID, "Sports", map[string]int{
		q1.ID: 2,
		q2.ID: 0,
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	entries, err := ranking.Ranking(ctx)
	if err != nil {
		t.Fatalf("ranking: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0].StudentName != "Sam Student" || entries[0].CorrectAnswersCount != 1 {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
	if len(entries[0].QuizzesTaken) != 1 || entries[0].QuizzesTaken[0].CorrectAnswers != 1 {
		t.Fatalf("unexpected quizzes taken: %+v", entries[0].QuizzesTaken)
	}

	// Deleting the quiz leaves its questions listed and answerable.
	if err := quizService.DeleteQuiz(ctx, q1.QuizID); err != nil {
		t.Fatalf("delete quiz: %v", err)
	}
	remaining, err := quizService.ListQuestions(ctx)
	if err != nil {
		t.Fatalf("list questions: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("expected questions to survive quiz deletion, got %d", len(remaining))
	}
	if err := submissions.SubmitAnswers(ctx, student.ID, "Sports", map[string]int{q2.ID: 2}); err != nil {
		t.Fatalf("submit after quiz deletion: %v", err)
	}
}

func applyMigrations(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
