package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/storage/redis/v3"
	"github.com/gofiber/template/html/v2"
	"github.com/hoanvu/atelier/internal/auth"
	"github.com/hoanvu/atelier/internal/common"
	"github.com/hoanvu/atelier/internal/config"
	"github.com/hoanvu/atelier/internal/contact"
	"github.com/hoanvu/atelier/internal/handlers/api"
	"github.com/hoanvu/atelier/internal/handlers/web"
	"github.com/hoanvu/atelier/internal/middlewares"
	"github.com/hoanvu/atelier/internal/notify"
	"github.com/hoanvu/atelier/internal/otp"
	"github.com/hoanvu/atelier/internal/properties"
	"github.com/hoanvu/atelier/internal/ratelimit"
	"github.com/hoanvu/atelier/internal/render"
	"github.com/hoanvu/atelier/internal/store"
	"github.com/hoanvu/atelier/internal/token"
	"github.com/hoanvu/atelier/model"
	"github.com/hoanvu/atelier/params"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	app       *cli.App
	gitCommit string
	gitDate   string
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "YAML config file",
		Value: "config.yaml",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}
)

func init() {
	app = cli.NewApp()
	app.EnableBashCompletion = true
	app.Usage = "atelier - studio website and admin back-office server"
	app.Flags = []cli.Flag{
		configFileFlag,
		debugFlag,
	}
	app.Commands = []*cli.Command{
		{
			Name: "version",
			Action: func(ctx *cli.Context) error {
				fmt.Println(params.VersionWithCommit(gitCommit, gitDate))
				return nil
			},
		},
	}
	app.Action = run
}

func mustInitLogger(debug bool) {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}

func mustInitDatabase(dbConfig config.MySQLConfig) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dbConfig.Dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   dbConfig.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err == nil {
		if dbConfig.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
		}
		if dbConfig.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
		}
		if dbConfig.ConnMaxIdleTime > 0 {
			sqlDB.SetConnMaxIdleTime(time.Duration(dbConfig.ConnMaxIdleTime) * time.Second)
		}
		if dbConfig.ConnMaxLifetime > 0 {
			sqlDB.SetConnMaxLifetime(time.Duration(dbConfig.ConnMaxLifetime) * time.Second)
		}
	}

	if err := db.AutoMigrate(model.Models...); err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	return db
}

func mustInitStorage(storageCfg config.StorageConfig) store.Storage {
	switch storageCfg.Backend {
	case "redis":
		redisStorage := redis.New(redis.Config{
			URL:           storageCfg.Redis.URL,
			PoolSize:      storageCfg.Redis.PoolSize,
			IsClusterMode: storageCfg.Redis.ClusterMode,
		})
		return store.NewRedisStorage(redisStorage.Conn())
	case "memory":
		slog.Warn("Using in-memory storage; codes and counters do not survive restarts")
		return store.NewMemoryStorage()
	default:
		slog.Error("Unsupported storage backend", "backend", storageCfg.Backend)
		os.Exit(1)
		return nil
	}
}

func mustInitNotifier(notifyCfg config.NotifyConfig) notify.Notifier {
	switch notifyCfg.Backend {
	case "telegram":
		if notifyCfg.Telegram.BotToken == "" || notifyCfg.Telegram.ChatID == "" {
			slog.Error("Telegram notifier requires botToken and chatID")
			os.Exit(1)
		}
		return notify.NewTelegramNotifier(notifyCfg.Telegram.BotToken, notifyCfg.Telegram.ChatID)
	case "smtp":
		smtpCfg := notifyCfg.SMTP
		if smtpCfg.Host == "" || smtpCfg.To == "" {
			slog.Error("SMTP notifier requires host and to")
			os.Exit(1)
		}
		return notify.NewSMTPNotifier(smtpCfg.Host, smtpCfg.Port, smtpCfg.Username, smtpCfg.Password, smtpCfg.From, smtpCfg.To)
	default:
		slog.Error("Unsupported notifier backend", "backend", notifyCfg.Backend)
		os.Exit(1)
		return nil
	}
}

func mustInitTokenService(secretKey string) *token.Service {
	tokenService, err := token.NewService(secretKey, params.AdminTokenExpiration)
	if err != nil {
		slog.Error("Failed to initialize token service", "error", err)
		os.Exit(1)
	}
	return tokenService
}

func mustInitHtmlEngine(templateDir string) *html.Engine {
	if templateDir != "" {
		return html.New(templateDir, ".html")
	}
	renderFS, _ := fs.Sub(templateFS, "templates")
	return html.NewFileSystem(http.FS(renderFS), ".html")
}

func setupRoutes(
	router fiber.Router,
	staticDir string,
	tokenService *token.Service,
	authHandler *api.AuthHandler,
	propertyHandler *api.PropertyHandler,
	contactHandler *api.ContactHandler,
	pagesHandler *web.PagesHandler) {

	router.Static("/static", staticDir)

	router.Get("/", pagesHandler.GetHome)
	router.Get("/properties", pagesHandler.GetProperties)
	router.Get("/properties/:slug", pagesHandler.GetProperty)
	router.Get("/contact", pagesHandler.GetContact)

	router.Post("/auth/send-otp", authHandler.PostSendOTP)
	router.Post("/auth/verify-otp", authHandler.PostVerifyOTP)
	router.Get("/auth/status", authHandler.GetStatus)
	router.Post("/auth/logout", authHandler.PostLogout)

	router.Get("/api/properties", propertyHandler.GetProperties)
	router.Get("/api/properties/:slug", propertyHandler.GetProperty)
	router.Post("/api/contact", contactHandler.PostContact)

	admin := router.Group("/api/admin", middlewares.RequireAdmin(tokenService))
	admin.Get("/properties", propertyHandler.GetAllProperties)
	admin.Post("/properties", propertyHandler.PostProperty)
	admin.Put("/properties/:id", propertyHandler.PutProperty)
	admin.Delete("/properties/:id", propertyHandler.DeleteProperty)
	admin.Get("/inquiries", contactHandler.GetInquiries)
}

func run(ctx *cli.Context) error {
	config, err := config.LoadConfig(ctx.String(configFileFlag.Name))
	if err != nil {
		slog.Error("Could not load config file.", "error", err)
		return err
	}

	mustInitLogger(config.Debug || ctx.IsSet(debugFlag.Name))

	if err := render.Initialize(map[string]interface{}{"siteName": config.SiteName}); err != nil {
		slog.Error("Failed to initialize message templates", "error", err)
		os.Exit(1)
	}

	db := mustInitDatabase(config.MySQL)
	storage := mustInitStorage(config.Storage)
	notifier := mustInitNotifier(config.Notify)
	tokenService := mustInitTokenService(config.SecretKey)

	// services
	var (
		limiterFactory  = ratelimit.NewFactory(storage)
		otpService      = otp.NewService(storage, notifier)
		authService     = auth.NewService(limiterFactory, otpService, tokenService, config.Admin.Username)
		propertyService = properties.NewService(properties.NewPropertyRepository(db))
		contactService  = contact.NewService(contact.NewInquiryRepository(db), notifier)
	)

	// handlers
	var (
		authHandler     = api.NewAuthHandler(authService, tokenService, config.Admin.CookieSecure)
		propertyHandler = api.NewPropertyHandler(propertyService)
		contactHandler  = api.NewContactHandler(contactService, limiterFactory)
		pagesHandler    = web.NewPagesHandler(propertyService, config.SiteName)
	)

	router := fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		BodyLimit:     params.ServerBodyLimit,
		IdleTimeout:   params.ServerIdleTimeout,
		ReadTimeout:   params.ServerReadTimeout,
		WriteTimeout:  params.ServerWriteTimeout,
		Views:         mustInitHtmlEngine(config.TemplateDir),
		ErrorHandler:  middlewares.ErrorHandler,
	})

	router.Use(recover.New())
	router.Use(logger.New())
	router.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(config.AllowOrigins, ", "),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	setupRoutes(router, config.StaticDir, tokenService, authHandler, propertyHandler, contactHandler, pagesHandler)

	healthCheckCtx, term := context.WithCancel(ctx.Context)
	done := make(chan struct{})
	go common.StartHealthCheckServer(healthCheckCtx, done, storage, db)
	defer func() {
		term()
		<-done
	}()
	return router.Listen(config.ListenAddr)
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
