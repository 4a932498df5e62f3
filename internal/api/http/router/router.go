package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dtroode/tasktracker-server/internal/api/http/handler"
	"github.com/dtroode/tasktracker-server/internal/api/http/middleware"
	"github.com/dtroode/tasktracker-server/internal/api/http/response"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

// Router wires HTTP handlers, the session gateway and shared middleware.
type Router struct {
	authService    handler.AuthService
	taskService    handler.TaskService
	sessions       middleware.SessionVerifier
	pinger         handler.Pinger
	contextManager model.ContextManager
	allowedOrigins []string
	logger         *logger.Logger
}

func New(
	authService handler.AuthService,
	taskService handler.TaskService,
	sessions middleware.SessionVerifier,
	pinger handler.Pinger,
	contextManager model.ContextManager,
	allowedOrigins []string,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		taskService:    taskService,
		sessions:       sessions,
		pinger:         pinger,
		contextManager: contextManager,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

// Register builds the HTTP handler. Every route under /api/tasks and the
// authenticated /api/user routes pass the session gateway first.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.sessions, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.contextManager, r.logger)
	taskHandler := handler.NewTask(r.taskService, r.contextManager, r.logger)
	healthHandler := handler.NewHealth(r.pinger, r.logger)

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(logging.Handle)
	mux.Use(chimw.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.origins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: false,
		MaxAge:           int((5 * time.Minute).Seconds()),
	}))

	mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, &model.Error{Kind: model.KindNotFound, Message: "route not found"})
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, &model.Error{Kind: model.KindNotFound, Message: "method not allowed on this route"})
	})

	mux.Get("/healthz", healthHandler.Check)

	mux.Route("/api", func(api chi.Router) {
		api.Route("/user", func(user chi.Router) {
			user.Post("/register", authHandler.Register)
			user.Post("/login", authHandler.Login)

			user.Group(func(protected chi.Router) {
				protected.Use(authenticate.Handle)
				protected.Get("/me", authHandler.Me)
				protected.Put("/profile", authHandler.UpdateProfile)
				protected.Put("/password", authHandler.ChangePassword)
				if r.authService.AvatarsEnabled() {
					protected.Put("/avatar", authHandler.UploadAvatar)
				}
			})
		})

		if r.authService.AvatarsEnabled() {
			api.Get("/users/{id}/avatar", authHandler.GetAvatar)
		}

		api.Route("/tasks", func(tasks chi.Router) {
			tasks.Use(authenticate.Handle)

			tasks.Get("/", taskHandler.List)
			tasks.Post("/", taskHandler.Create)
			tasks.Get("/stats", taskHandler.Stats)
			tasks.Get("/{id}", taskHandler.Get)
			tasks.Put("/{id}", taskHandler.Update)
			tasks.Patch("/{id}/complete", taskHandler.Complete)
			tasks.Delete("/{id}", taskHandler.Delete)

			// Legacy paths kept for the existing web client.
			tasks.Get("/gp", taskHandler.List)
			tasks.Post("/gp", taskHandler.Create)
			tasks.Put("/{id}/gp", taskHandler.Update)
			tasks.Delete("/{id}/gp", taskHandler.Delete)
		})
	})

	return mux
}

func (r *Router) origins() []string {
	if len(r.allowedOrigins) == 0 {
		return []string{"*"}
	}
	return r.allowedOrigins
}
