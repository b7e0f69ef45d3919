package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"aitutor/config"
	"aitutor/db"
	"aitutor/handlers"
	"aitutor/services"

	"github.com/gorilla/mux"
)

var allowedOrigins = map[string]bool{
	"http://localhost:5173": true,
	"http://localhost:3000": true,
}

func main() {
	cfg := config.Load()

	if cfg.OpenAIAPIKey == "" {
		log.Println("WARNING: OPENAI_API_KEY is not set; chat and test generation will fail")
	}

	var store db.Store
	if cfg.DatabaseURL != "" {
		pgStore, err := db.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize Postgres store: %v", err)
		}
		store = pgStore
	} else {
		store = db.NewMemoryStore()
	}
	defer store.Close()

	completionService, err := services.NewCompletionService(cfg.OpenAIAPIKey)
	if err != nil {
		log.Fatalf("Failed to initialize completion service: %v", err)
	}

	materialService := services.NewMaterialService(store)
	materialHandler := handlers.NewMaterialHandler(materialService)

	chatService := services.NewChatService(store, completionService)
	chatHandler := handlers.NewChatHandler(chatService)

	testService := services.NewTestService(store, completionService)
	testHandler := handlers.NewTestHandler(testService)

	analyticsService := services.NewAnalyticsService(store)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	router := mux.NewRouter()

	router.Use(corsMiddleware)
	router.Use(jsonMiddleware)

	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("OPTIONS")

	materialHandler.RegisterRoutes(router)
	chatHandler.RegisterRoutes(router)
	testHandler.RegisterRoutes(router)
	analyticsHandler.RegisterRoutes(router)

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")
	router.HandleFunc("/", rootHandler).Methods("GET")

	addr := ":" + cfg.Port
	fmt.Printf("Server starting on port %s\n", cfg.Port)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "*")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"message":   "AI Tutor server is running",
		"timestamp": time.Now(),
	})
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"name":        "AI Tutor Platform",
		"version":     "1.0.0",
		"description": "AI assistant for studying uploaded materials",
		"endpoints": map[string]string{
			"health":        "GET /health",
			"upload":        "POST /materials/upload",
			"materials":     "GET /materials/list/{course_id}",
			"chat":          "POST /chat/ask",
			"chat_history":  "GET /chat/history/{material_id}",
			"generate_test": "POST /tests/generate",
			"submit_answer": "POST /tests/submit-answer",
			"analytics":     "GET /analytics/dashboard/{course_id}",
		},
	})
}
