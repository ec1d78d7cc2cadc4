package rest

import (
	"desafiabrasil/internal/service"
	"desafiabrasil/internal/transport/rest/handler"
	"desafiabrasil/internal/transport/rest/middleware"
	"desafiabrasil/internal/transport/ws"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	ExamService     *service.ExamService
	QuestionService *service.QuestionService
	UserService     *service.UserService
	RankingService  *service.RankingService
	WSHub           *ws.Hub
	AllowedOrigins  []string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	examHandler := handler.NewExamHandler(c.ExamService)
	questionHandler := handler.NewQuestionHandler(c.QuestionService)
	userHandler := handler.NewUserHandler(c.UserService)
	rankingHandler := handler.NewRankingHandler(c.RankingService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.RankingService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.AllowedOrigins))

	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	api.HandleFunc("/exams/available", examHandler.Available).Methods("GET", "OPTIONS")

	// WebSocket routes (public with token in query param)
	api.HandleFunc("/ws/ranking", wsHandler.RankingWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok","rankingSubscribers":%d}`, c.WSHub.Subscribers(service.TopicRanking))
	}).Methods("GET")

	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	// Student routes (require user auth)
	userRoutes := api.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.HandleFunc("/exams/{templateId}/start", examHandler.Start).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/exams/{templateId}/finish", examHandler.Finish).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/users/me", userHandler.Me).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/users/me/history", userHandler.History).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/ranking", rankingHandler.Get).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/questions", questionHandler.Submit).Methods("POST", "OPTIONS")

	// Admin routes (require admin role)
	adminRoutes := api.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/questions", questionHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/questions", questionHandler.Submit).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/questions/{id}", questionHandler.Get).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/questions/{id}", questionHandler.Update).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/questions/{id}", questionHandler.Delete).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/questions/{id}/approve", questionHandler.Approve).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/questions/{id}/reject", questionHandler.Reject).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/questions/{id}/active", questionHandler.SetActive).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/users", userHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/users/{id}/role", userHandler.SetRole).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/ranking/rebuild", rankingHandler.Rebuild).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(allowedOrigins []string) mux.MiddlewareFunc {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case allowAll:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case allowed[origin]:
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
