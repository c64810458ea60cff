package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SamarthKasar123/Primewave/handlers"
	"github.com/SamarthKasar123/Primewave/logging"
	"github.com/SamarthKasar123/Primewave/middleware"
	"github.com/SamarthKasar123/Primewave/services"
	"github.com/SamarthKasar123/Primewave/store"
)

type stores struct {
	projects store.ProjectStore
	clients  store.ClientStore
	managers store.ManagerStore
	pinger   store.Pinger
}

// connectStores opens the Mongo deployment from MONGO_URI. Without a URI
// the server runs on the in-memory store, the same fallback the original
// development setup used.
func connectStores() stores {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		logging.Logger.Warn("MONGO_URI not set, using in-memory store")
		memory := store.NewMemoryProjectStore()
		return stores{
			projects: memory,
			clients:  store.NewMemoryClientStore(),
			managers: store.NewMemoryManagerStore(),
			pinger:   memory,
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logging.Logger.Fatalf("Database connection failed: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("MongoDB connection error: %v", err)
	}
	logging.Logger.Info("Connected to MongoDB")

	db := client.Database("primewave")
	return stores{
		projects: store.NewMongoProjectStore(db.Collection("projects")),
		clients:  store.NewMongoClientStore(db.Collection("clients")),
		managers: store.NewMongoManagerStore(db.Collection("managers")),
		pinger:   &store.MongoPinger{Client: client},
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		logging.Logger.Info("No .env file found, relying on environment")
	}
	logging.InitLogger()

	st := connectStores()

	blackList, err := services.LoadBlackList("blacklist.txt")
	if err != nil {
		logging.Logger.Warnf("Password blacklist not loaded: %v", err)
		blackList = map[string]bool{}
	}

	notifier := services.NewNotificationService(nil)
	projectService := services.NewProjectService(st.projects, st.clients, st.managers, notifier)
	authService := services.NewAuthService(st.clients, st.managers, blackList)

	projectHandler := handlers.NewProjectHandler(projectService)
	loginHandler := handlers.NewLoginHandler(authService)
	healthHandler := handlers.NewHealthHandler(st.pinger)

	r := mux.NewRouter()
	r.HandleFunc("/", handlers.Welcome).Methods("GET")
	r.HandleFunc("/api/health", healthHandler.Health).Methods("GET")

	r.HandleFunc("/api/auth/client/register", loginHandler.RegisterClient).Methods("POST")
	r.HandleFunc("/api/auth/client/login", loginHandler.LoginClient).Methods("POST")
	r.HandleFunc("/api/auth/manager/login", loginHandler.LoginManager).Methods("POST")

	projects := r.PathPrefix("/api/projects").Subrouter()
	projects.Use(middleware.JWTAuth)
	projects.HandleFunc("", projectHandler.CreateProject).Methods("POST")
	projects.HandleFunc("/client/my-projects", projectHandler.GetClientProjects).Methods("GET")
	projects.HandleFunc("/manager/all", projectHandler.GetAllProjects).Methods("GET")
	projects.HandleFunc("/{id}", projectHandler.GetProject).Methods("GET")
	projects.HandleFunc("/{id}/status", projectHandler.UpdateStatus).Methods("PATCH")
	projects.HandleFunc("/{id}/request-extension", projectHandler.RequestExtension).Methods("PATCH")
	projects.HandleFunc("/{id}/respond-extension", projectHandler.RespondExtension).Methods("PATCH")
	projects.HandleFunc("/{id}/extension/approve", projectHandler.ApproveExtension).Methods("PATCH")
	projects.HandleFunc("/{id}/extension/reject", projectHandler.RejectExtension).Methods("PATCH")
	projects.HandleFunc("/{id}/submit", projectHandler.SubmitWork).Methods("PATCH")

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      enableCORS(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logging.Logger.Infof("Server running on port %s", port)
	logging.Logger.Fatal(srv.ListenAndServe())
}

// enableCORS allows the frontend origin configured in FRONTEND_URL.
func enableCORS(next http.Handler) http.Handler {
	origin := os.Getenv("FRONTEND_URL")
	if origin == "" {
		origin = "http://localhost:3000"
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, PATCH, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
