package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Eddiexian/AI-Pr/internal/application/auth"
	"github.com/Eddiexian/AI-Pr/internal/application/occupancy"
	"github.com/Eddiexian/AI-Pr/internal/application/usecase"
	"github.com/Eddiexian/AI-Pr/internal/infrastructure/mockdata"
	"github.com/Eddiexian/AI-Pr/internal/infrastructure/storage"
	httpRouter "github.com/Eddiexian/AI-Pr/internal/interfaces/http"
	"github.com/Eddiexian/AI-Pr/pkg/config"
	"github.com/Eddiexian/AI-Pr/pkg/jwt"
	"github.com/Eddiexian/AI-Pr/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Bool("mock_data", cfg.Data.UseMock).
		Msg("iniciando aplicación")

	tokens, err := jwt.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.Expiration)*time.Minute)
	if err != nil {
		log.Fatal().Err(err).Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión a base de datos")
	}
	defer store.Close()

	var provider occupancy.Provider = occupancy.NewStoreProvider(store.Occupancy)
	mode := "database"
	if cfg.Data.UseMock {
		seed := cfg.Data.MockSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		provider = mockdata.NewProvider(seed)
		mode = "mock"
	}

	authUC := auth.NewAuthUseCase(store.Users, tokens)
	layoutUC := usecase.NewLayoutUseCase(store.Layouts, store.Components)
	componentUC := usecase.NewComponentUseCase(store.Layouts, store.Components)
	occupancyUC := occupancy.NewUseCase(provider)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "WMS Layout API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "mode": mode})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		LayoutUC:    layoutUC,
		ComponentUC: componentUC,
		OccupancyUC: occupancyUC,
		Tokens:      tokens,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
