package main

import (
	"context"
	"log"
	"runtime"

	"backend-triage/internal/chatbot"
	"backend-triage/internal/config"
	"backend-triage/internal/http/handler"
	"backend-triage/internal/http/middleware"
	"backend-triage/internal/models"
	"backend-triage/internal/queue"
	"backend-triage/internal/realtime"
	"backend-triage/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	app := fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		StrictRouting: true,
	})

	config.LoadEnv()

	db, err := config.InitDB()
	if err != nil {
		log.Fatal("MySQL connection failed:", err)
	}
	defer db.Close()

	st, err := store.NewMySQLStore(db)
	if err != nil {
		log.Fatal("Schema setup failed:", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb, err := config.InitRedis(ctx)
	if err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	defer rdb.Close()

	engine := queue.New(st)
	bot := chatbot.New(chatbot.LoadConfig(config.GetEnv("INTENTS_FILE", "intents.json")), engine)

	hub := realtime.NewHub(engine, rdb)
	go hub.Run(ctx)

	queueHandler := &handler.QueueHandler{Engine: engine, Hub: hub}
	chatHandler := &handler.ChatHandler{Bot: bot}
	authHandler := &handler.AuthHandler{Users: st}
	userHandler := &handler.UserHandler{Users: st}

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Triage queue API running",
		})
	})

	// Public
	app.Post("/auth/login", authHandler.Login)
	app.Get("/api/queue", queueHandler.GetQueue)
	app.Get("/api/export", queueHandler.ExportData)
	app.Post("/api/chat", chatHandler.Chat)

	// Display board websocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/display", websocket.New(hub.Handle))

	// Staff routes (any authenticated role)
	api := app.Group("/api", middleware.JWTAuth())
	api.Post("/add", queueHandler.AddPatient)
	api.Post("/serve", queueHandler.ServePatient)
	api.Post("/sort", queueHandler.SortQueue)

	// Admin routes
	api.Post("/clear", middleware.RoleAuth(models.RoleAdmin), queueHandler.ClearQueue)
	api.Post("/remove_served", middleware.RoleAuth(models.RoleAdmin), queueHandler.RemoveServed)
	api.Post("/users", middleware.RoleAuth(models.RoleAdmin), userHandler.CreateUser)

	addr := config.GetEnv("APP_HOST", "0.0.0.0") + ":" + config.GetEnv("APP_PORT", "5000")
	log.Println("Server running at", addr)
	log.Fatal(app.Listen(addr))
}
