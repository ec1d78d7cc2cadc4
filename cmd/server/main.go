package main

import (
	"context"
	_ "desafiabrasil/docs"
	"desafiabrasil/internal/cache"
	"desafiabrasil/internal/catalog"
	"desafiabrasil/internal/config"
	"desafiabrasil/internal/repository"
	"desafiabrasil/internal/service"
	"desafiabrasil/internal/transport/rest"
	"desafiabrasil/internal/transport/ws"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// @title Desafia Brasil API
// @version 1.0
// @description ENEM and vestibular practice exams: assembly, grading, ranking and moderation
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log.Println("started")
	ctx := context.Background()
	cfg := config.Load()

	// Exam catalog
	cat, err := catalog.LoadFile(cfg.CatalogFile)
	if err != nil {
		log.Fatal("Failed to load exam catalog:", err)
	}
	log.Printf("Exam catalog loaded with %d templates", cat.Len())

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)
	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal("Failed to create indexes:", err)
	}

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	questionRepo := repository.NewQuestionRepo(db)
	userRepo := repository.NewUserRepo(db)
	resultRepo := repository.NewExamResultRepo(db)

	// Initialize caches
	leaderboard := cache.NewLeaderboardCache(rdb)
	sessions := cache.NewExamSessionCache(rdb)
	availability := cache.NewAvailabilityCache(rdb, cfg.AvailabilityTTL)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiration)
	assembler := service.NewAssembler(cat, questionRepo)
	grader := service.NewGrader(cat, questionRepo, userRepo)
	rankingSvc := service.NewRankingService(userRepo, leaderboard, cfg.RankingSize)
	examSvc := service.NewExamService(cat, assembler, grader, sessions, availability, resultRepo, rankingSvc)
	questionSvc := service.NewQuestionService(questionRepo, availability)
	userSvc := service.NewUserService(userRepo, resultRepo)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	rankingSvc.SetBroadcaster(wsHub)

	// Redis may have been flushed since the last run
	if n, err := rankingSvc.Rebuild(ctx); err != nil {
		log.Printf("Warning: leaderboard rebuild failed: %v", err)
	} else {
		log.Printf("Leaderboard loaded with %d users", n)
	}

	// Create router with container
	container := &rest.Container{
		AuthService:     authSvc,
		ExamService:     examSvc,
		QuestionService: questionSvc,
		UserService:     userSvc,
		RankingService:  rankingSvc,
		WSHub:           wsHub,
		AllowedOrigins:  cfg.AllowedOrigins,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /api/auth/register")
		log.Println("  POST /api/auth/login")
		log.Println("  GET  /api/exams/available")
		log.Println("  POST /api/exams/{templateId}/start")
		log.Println("  POST /api/exams/{templateId}/finish")
		log.Println("  GET  /api/users/me[/history]")
		log.Println("  GET  /api/ranking")
		log.Println("  POST /api/questions")
		log.Println("  *    /api/admin/...")
		log.Println("  WS   /api/ws/ranking")
		log.Println("  GET  /swagger/doc.json")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := repository.EnsureQuestionIndexes(ctx, db); err != nil {
		return err
	}
	if err := repository.EnsureUserIndexes(ctx, db); err != nil {
		return err
	}
	return repository.EnsureExamResultIndexes(ctx, db)
}
