package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"catalogadmin/internal/auth"
	"catalogadmin/internal/db"
	"catalogadmin/internal/domain/catalog"
	"catalogadmin/internal/domain/storage"
	"catalogadmin/internal/media"
	"catalogadmin/internal/metrics"
	"catalogadmin/internal/ratelimiter"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	defaultRequests := 200
	defaultEnabled := false

	requestsPerTimeFrame := defaultRequests
	if val, exists := os.LookupEnv("RATELIMITER_REQUESTS_COUNT"); exists {
		if parsedVal, err := strconv.Atoi(val); err == nil && parsedVal > 0 {
			requestsPerTimeFrame = parsedVal
		} else {
			fmt.Println("Invalid RATELIMITER_REQUESTS_COUNT, defaulting to", defaultRequests)
		}
	}

	enabled := defaultEnabled
	if val, exists := os.LookupEnv("RATE_LIMITER_ENABLED"); exists {
		if parsedVal, err := strconv.ParseBool(val); err == nil {
			enabled = parsedVal
		} else {
			fmt.Println("Invalid RATE_LIMITER_ENABLED, defaulting to", defaultEnabled)
		}
	}

	return ratelimiter.Config{
		RequestsPerTimeFrame: requestsPerTimeFrame,
		TimeFrame:            5 * time.Second,
		Enabled:              enabled,
	}
}

// NewLogger creates a new zap logger with color.
func NewLogger(level string) (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
		}
	}

	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), lvl)

	return zap.New(core).Sugar(), nil
}

var version = "1.0.0"

//	@title			Catalog Admin API
//	@description	Admin backend for a product catalog: categories, subcategories and products with images.

//	@contact.name	API Support
//	@contact.url	http://www.swagger.io/support
//	@contact.email	support@swagger.io

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@BasePath					/
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := loadConfig()

	logger, err := NewLogger(os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Storage
	store, err := openStorage(ctx, cfg.db)
	if err != nil {
		logger.Fatal(err)
	}
	defer store.Close(context.Background())
	logger.Infow("storage ready", "driver", store.Driver)

	// Metrics
	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	// Images
	images, err := openMedia(ctx, cfg.media, logger, media.NewMetrics(registry))
	if err != nil {
		logger.Fatal(err)
	}
	logger.Infow("image storage ready", "backend", images.Backend())

	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)

	if cfg.auth.token.secret == "" {
		logger.Warn("AUTH_TOKEN_SECRET is empty, product deletion tokens cannot be verified safely")
	}
	jwtAuthenticator := auth.NewJWTAuthenticator(
		cfg.auth.token.secret,
		cfg.auth.token.iss,
		cfg.auth.token.iss,
		cfg.auth.token.exp,
	)

	app := &application{
		config:        cfg,
		store:         store,
		catalog:       catalog.NewService(store.Catalog, images, logger),
		images:        images,
		logger:        logger,
		authenticator: jwtAuthenticator,
		admin:         auth.Admin{User: cfg.auth.admin.user, PasswordHash: cfg.auth.admin.passwordHash},
		rateLimiter:   rateLimiter,
		metrics:       httpMetrics,
	}

	//Metrics collected http://localhost:8080/v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		return store.Stats()
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}

func loadConfig() config {
	addr := os.Getenv("ADDR")
	if addr == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8000"
		}
		addr = ":" + port
	}

	var maxConns int32
	if v := os.Getenv("DB_MAX_CONNS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			log.Fatalf("Invalid value for DB_MAX_CONNS: %v", err)
		}
		maxConns = int32(n)
	}

	return config{
		addr:   addr,
		env:    envOr("ENV", "development"),
		apiURL: envOr("EXTERNAL_URL", "localhost"+addr),
		db: dbConfig{
			driver:      strings.ToLower(envOr("DB_DRIVER", "postgres")),
			addr:        os.Getenv("DB_ADDR"),
			maxConns:    maxConns,
			maxIdleTime: os.Getenv("DB_MAX_IDLE_TIME"),
			mongoURI:    os.Getenv("MONGODB_URI"),
			mongoDB:     envOr("MONGODB_DATABASE", "catalog"),
		},
		media: mediaConfig{
			driver:        strings.ToLower(envOr("MEDIA_DRIVER", "cloudinary")),
			cloudinaryURL: os.Getenv("CLOUDINARY_URL"),
			s3Bucket:      os.Getenv("S3_BUCKET"),
			awsRegion:     os.Getenv("AWS_REGION"),
			s3BaseURL:     os.Getenv("S3_PUBLIC_BASE_URL"),
			uploadsDir:    envOr("UPLOADS_DIR", "uploads"),
		},
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
			token: tokenConfig{
				secret: os.Getenv("AUTH_TOKEN_SECRET"),
				exp:    time.Hour * 12,
				iss:    "catalogadmin",
			},
			admin: adminConfig{
				user:         os.Getenv("ADMIN_USER"),
				passwordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
			},
		},
		rateLimiter: LoadRateLimiterConfig(),
	}
}

func openStorage(ctx context.Context, cfg dbConfig) (*storage.Container, error) {
	switch cfg.driver {
	case "postgres":
		pool, err := db.New(cfg.addr, cfg.maxConns, cfg.maxIdleTime)
		if err != nil {
			return nil, err
		}
		store, err := storage.NewPostgres(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil
	case "mongo":
		client, database, err := db.NewMongo(cfg.mongoURI, cfg.mongoDB)
		if err != nil {
			return nil, err
		}
		store, err := storage.NewMongo(ctx, client, database)
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return store, nil
	case "memory":
		return storage.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.driver)
	}
}

// openMedia picks the hosted backend. The disk is always opened so product
// images stored locally can be served and deleted whatever the backend.
func openMedia(ctx context.Context, cfg mediaConfig, logger *zap.SugaredLogger, m *media.Metrics) (*media.Manager, error) {
	disk, err := media.NewDisk(cfg.uploadsDir)
	if err != nil {
		return nil, err
	}

	var host media.Host
	switch cfg.driver {
	case "cloudinary":
		if cfg.cloudinaryURL == "" {
			logger.Warn("CLOUDINARY_URL is empty, storing images on local disk")
			break
		}
		cld, err := media.NewCloudinaryFromURL(cfg.cloudinaryURL, media.Folder)
		if err != nil {
			return nil, err
		}
		host = cld
	case "s3":
		s3, err := media.NewS3(ctx, cfg.awsRegion, cfg.s3Bucket, cfg.s3BaseURL, media.Folder)
		if err != nil {
			return nil, err
		}
		host = s3
	case "local":
	default:
		return nil, fmt.Errorf("unknown MEDIA_DRIVER %q", cfg.driver)
	}

	return media.NewManager(host, disk, logger, m), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
