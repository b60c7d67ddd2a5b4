package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"wiseowl-server/internal/bria"
	"wiseowl-server/internal/config"
	"wiseowl-server/internal/database"
	delivery "wiseowl-server/internal/delivery/http"
	"wiseowl-server/internal/delivery/http/middleware"
	"wiseowl-server/internal/groq"
	"wiseowl-server/internal/repository"
	"wiseowl-server/internal/service"
)

func main() {
	// Загрузка переменных окружения
	if err := godotenv.Load(); err != nil {
		// Логируем как предупреждение, т.к. в production .env может не использоваться
		fmt.Printf("Warning: could not load .env file: %v\n", err)
	}

	// Инициализация логгера
	initLogger()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Инициализация соединения с БД
	log.Info().Msg("connecting to database...")
	dbPool, err := initDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer dbPool.Close()
	log.Info().Msg("database connection established")

	// Инициализация sqlx.DB
	log.Info().Msg("initializing sqlx database connection...")
	sqlxDB, err := initSqlxDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize sqlx database")
	}
	defer sqlxDB.Close()
	log.Info().Msg("sqlx database connection established")

	// Применяем миграции
	log.Info().Msg("applying database migrations...")
	if err := database.RunMigrations(context.Background(), dbPool, cfg.MigrationsDir); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}
	log.Info().Msg("database migrations applied successfully")

	// Инициализация клиентов внешних AI-сервисов
	groqClient, err := groq.New(groq.Config{
		APIKey:        cfg.GroqAPIKey,
		BaseURL:       cfg.GroqBaseURL,
		Model:         cfg.GroqModel,
		ScenesTimeout: cfg.GroqScenesTimeout,
		QuizTimeout:   cfg.GroqQuizTimeout,
		ChatTimeout:   cfg.GroqChatTimeout,
		MaxAttempts:   cfg.AIMaxAttempts,
		RetryDelay:    cfg.AIRetryDelay,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Groq client")
	}

	briaClient, err := bria.New(bria.Config{
		APIKey:           cfg.BriaAPIKey,
		TranslatorURL:    cfg.BriaTranslatorURL,
		GeneratorURL:     cfg.BriaGeneratorURL,
		TranslateTimeout: cfg.BriaTranslateTimeout,
		RenderTimeout:    cfg.BriaRenderTimeout,
		MaxAttempts:      cfg.AIMaxAttempts,
		RetryDelay:       cfg.AIRetryDelay,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Bria client")
	}

	// Инициализация репозиториев
	topicRepo := repository.NewTopicRepository(dbPool)
	sceneRepo := repository.NewSceneRepository(dbPool)
	variationRepo := repository.NewSceneVariationRepository(sqlxDB)

	// Инициализация сервисов
	journeyService := service.NewJourneyService(topicRepo, sceneRepo, variationRepo, groqClient, briaClient)

	// Инициализация HTTP обработчиков
	journeyHandlers := delivery.New(journeyService)

	// Настройка маршрутов
	router := mux.NewRouter()

	// Технические маршруты (не требуют проверки JWT)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbPool.Ping(r.Context()); err != nil {
			delivery.RespondWithError(w, http.StatusServiceUnavailable, "база данных недоступна")
			return
		}
		delivery.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Создаем подмаршрутизатор для API, требующего аутентификации
	apiRouter := router.PathPrefix("/api").Subrouter()

	// Применяем Middleware: сначала логгирование, потом JWT
	apiRouter.Use(LoggingMiddleware)
	apiRouter.Use(middleware.JWTMiddleware([]byte(cfg.JWTSecret)))

	// Регистрация API маршрутов
	journeyHandlers.RegisterRoutes(apiRouter)

	// Настройка CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	// Создание HTTP сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      c.Handler(router),
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	// Запуск сервера в горутине
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Настройка плавного завершения
	gracefulShutdown(server)
}

// initLogger настраивает глобальный логгер
func initLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.With().Caller().Logger()

	// В режиме разработки используем более читаемый вывод
	if os.Getenv("ENV") != "production" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(output).With().Timestamp().Caller().Logger()
	}

	// Настройка уровня логирования
	logLevel := zerolog.InfoLevel
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logLevel = lvl
	}
	zerolog.SetGlobalLevel(logLevel)
}

// initDatabase инициализирует соединение с базой данных
func initDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.DBMaxConns)
	poolConfig.MaxConnIdleTime = cfg.DBIdleTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	// Проверка соединения
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// initSqlxDatabase инициализирует соединение с базой данных с использованием sqlx
func initSqlxDatabase(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database using sqlx: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxConns)
	db.SetMaxIdleConns(cfg.DBMaxConns / 2)
	db.SetConnMaxIdleTime(cfg.DBIdleTimeout)

	// Проверка соединения
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database using sqlx: %w", err)
	}

	return db, nil
}

// LoggingMiddleware внедряет настроенный логгер в контекст запроса
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxWithLogger := log.Logger.WithContext(r.Context())
		r = r.WithContext(ctxWithLogger)
		next.ServeHTTP(w, r)
	})
}

// gracefulShutdown обеспечивает плавное завершение работы сервера
func gracefulShutdown(server *http.Server) {
	// Ожидание сигнала остановки
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down server...")

	// Создаем контекст с таймаутом для завершения
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Остановка HTTP сервера
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	log.Info().Msg("server stopped gracefully")
}
