package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalogadmin/docs" //this is required to generate swagger docs
	"catalogadmin/internal/auth"
	"catalogadmin/internal/domain/catalog"
	"catalogadmin/internal/domain/storage"
	"catalogadmin/internal/media"
	"catalogadmin/internal/metrics"
	"catalogadmin/internal/ratelimiter"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         *storage.Container
	catalog       *catalog.Service
	images        *media.Manager
	logger        *zap.SugaredLogger
	authenticator auth.Authenticator
	admin         auth.Admin
	rateLimiter   *ratelimiter.FixedWindowRateLimiter
	metrics       *metrics.HTTPMetrics
}

type config struct {
	addr        string
	env         string
	apiURL      string
	db          dbConfig
	media       mediaConfig
	auth        authConfig
	rateLimiter ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
	admin adminConfig
}

type tokenConfig struct {
	secret string
	exp    time.Duration
	iss    string
}

type basicConfig struct {
	user string
	pass string
}

type adminConfig struct {
	user         string
	passwordHash string
}

type dbConfig struct {
	driver      string
	addr        string
	maxConns    int32
	maxIdleTime string
	mongoURI    string
	mongoDB     string
}

type mediaConfig struct {
	driver        string
	cloudinaryURL string
	s3Bucket      string
	awsRegion     string
	s3BaseURL     string
	uploadsDir    string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
	r.Use(middleware.Timeout(60 * time.Second))

	if app.metrics != nil {
		r.Use(app.metrics.Middleware)
	}
	r.Use(app.RateLimiterMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Hello World!"))
	})

	if dir := app.config.media.uploadsDir; dir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(filesOnly{http.Dir(dir)})))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/token", app.createTokenHandler)
		r.Get("/dashboard", app.dashboardHandler)

		r.Route("/category", func(r chi.Router) {
			r.Get("/", app.listCategoriesHandler)
			r.Post("/", app.createCategoryHandler)
			r.Put("/{id}", app.updateCategoryHandler)
			r.Delete("/{id}", app.deleteCategoryHandler)
		})

		r.Route("/subcategory", func(r chi.Router) {
			r.Get("/", app.listSubcategoriesHandler)
			r.Post("/", app.createSubcategoryHandler)
			r.Get("/byCategory/{categoryId}", app.listSubcategoriesByCategoryHandler)
			r.Put("/{id}", app.updateSubcategoryHandler)
			r.Delete("/{id}", app.deleteSubcategoryHandler)
		})

		r.Route("/product", func(r chi.Router) {
			r.Get("/", app.listProductsHandler)
			r.Post("/", app.createProductHandler)
			r.Put("/{id}", app.updateProductHandler)
			r.With(app.AuthTokenMiddleware).Delete("/{id}", app.deleteProductHandler)
		})
	})

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/v1/swagger/doc.json", app.config.apiURL)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)
		if app.metrics != nil {
			r.With(app.BasicAuthMiddleware()).Get("/metrics", app.metrics.Handler().ServeHTTP)
		}
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 30,
		IdleTimeout:  time.Minute,
	}

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env,
		"storage", app.store.Driver, "media", app.images.Backend())

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}

// filesOnly hides directories so stored uploads cannot be listed.
type filesOnly struct {
	root http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.root.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}
