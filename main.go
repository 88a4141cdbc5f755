package main

import (
	"certchain/config"
	certificateController "certchain/controllers/certificate"
	"certchain/database"
	"certchain/pipeline"
	adminRoutes "certchain/routers/adminRoutes"
	authRoutes "certchain/routers/authRoutes"
	certificateRoutes "certchain/routers/certificateRoutes"
	institutionRoutes "certchain/routers/institutionRoutes"
	"certchain/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	timeout := time.Duration(config.AppConfig.HttpTimeoutSec) * time.Second

	store := utils.NewPinataClient(
		config.AppConfig.PinataApiURL,
		config.AppConfig.PinataJWT,
		config.AppConfig.PinataGatewayURL,
		config.AppConfig.PublicGatewayURL,
		timeout,
	)
	ledger := utils.NewAvalancheClient(config.AppConfig.AvalancheApiURL, timeout)
	qr := utils.NewQRGenerator()

	orch := pipeline.NewOrchestrator(database.Database.Db, store, ledger, qr, pipeline.Options{
		FrontendURL: config.AppConfig.FrontendURL,
		ExplorerURL: config.AppConfig.ExplorerURL,
		HttpTimeout: timeout,
	})
	certificateController.Init(orch)

	sweeper := utils.StartPipelineSweeper()
	defer sweeper.Stop()

	app := fiber.New(fiber.Config{
		BodyLimit: 12 * 1024 * 1024, // certificate images up to 10MB plus form overhead
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	institutionRoutes.SetupInstitutionRoutes(app)
	certificateRoutes.SetupCertificateRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
