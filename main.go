package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"campus-jobs-backend/config"
	apiv1 "campus-jobs-backend/controllers/v1"
	"campus-jobs-backend/controllers/v1/dict"
	"campus-jobs-backend/fiberlog"
	"campus-jobs-backend/initializers"
	"campus-jobs-backend/lib/ws"
	"campus-jobs-backend/middleware"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
)

//go:generate go run github.com/swaggo/swag/cmd/swag init --parseDependency --outputTypes json -o ./docs

// @title Campus Jobs API
// @version 1.0
// @BasePath /
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: config.Conf.App.BodyLimit,
	})
	app.Use(fiberRecover.New())

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: "./docs/swagger.json",
	}
	app.Use(swagger.New(swaggerCfg))

	//api
	apiV1 := fiber.New(fiber.Config{
		BodyLimit: config.Conf.App.BodyLimit,
	})
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	apiV1.Use(middleware.WithBodyLimit(int64(config.Conf.App.BodyLimit)))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	apiv1.InitHealthApiRouters(apiV1)
	apiv1.InitUserApiRouters(apiV1)
	apiv1.InitCompanyApiRouters(apiV1)
	apiv1.InitJobApiRouters(apiV1)
	apiv1.InitApplicationApiRouters(apiV1)
	apiv1.InitEventApiRouters(apiV1)
	apiv1.InitMessageApiRouters(apiV1)
	apiv1.InitAnalyticsApiRouters(apiV1)
	apiv1.InitNotificationApiRouters(apiV1)
	apiv1.InitCandidateApiRouters(apiV1)

	//dict
	dicts := fiber.New()
	apiV1.Mount("/dict", dicts)
	dicts.Use(middleware.AuthorizationRequired(), middleware.RbacMiddleware())
	dict.InitCategoryDictApiRouters(dicts)
	dict.InitHiringStageDictApiRouters(dicts)
	dict.InitApplicationStatusDictApiRouters(dicts)

	//websocket
	wsApp := fiber.New()
	apiV1.Mount("/ws", wsApp)
	wsApp.Use(middleware.AuthorizationRequired())
	ws.InitWs(wsApp)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	wg := sync.WaitGroup{}
	go func() {
		<-c
		wg.Add(1)
		defer wg.Done()
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		time.Sleep(time.Second)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
