package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/benbeisheim/chessengine/internal/config"
	"github.com/benbeisheim/chessengine/internal/controller"
	"github.com/benbeisheim/chessengine/internal/middleware"
	"github.com/benbeisheim/chessengine/internal/notation"
	"github.com/benbeisheim/chessengine/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{AppName: "chessengine"})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	searchService := service.NewSearchService(service.SearchOptions{
		DefaultDepth: cfg.SearchDepth,
		MaxDepth:     cfg.MaxDepth,
		Strategy:     cfg.Strategy,
		Timeout:      cfg.SearchTimeout,
	})
	gameManager := service.NewGameManager(searchService, notation.SANOrCoordinate)
	gameService := service.NewGameService(gameManager, searchService)

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	// Set up WebSocket routes
	app.Use("/ws", middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         cfg.Origins(),
	}))

	// Set up REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())
	controller.RegisterRoutes(api, gameController)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	log.Infof("listening on %s (depth %d, max %d, %s)", cfg.Addr, cfg.SearchDepth, cfg.MaxDepth, cfg.Strategy)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal(err)
	}
	gameManager.Wait()
}
