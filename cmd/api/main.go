package main

import (
	"context"
	"net/http"

	_ "yahoo-geocoder/docs"
	"yahoo-geocoder/internal/app"
	"yahoo-geocoder/internal/config"
	"yahoo-geocoder/internal/handler"
	"yahoo-geocoder/internal/logger"
	"yahoo-geocoder/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title			Yahoo Geocoder API
// @version		1.0
// @description	Geocoding over the Yahoo Maps and PlaceFinder services, with PostGIS-backed lookup history.
// @BasePath		/
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	if err := logger.Setup(config.LogLevel, config.LogPretty); err != nil {
		log.Fatal().Err(err).Msg("cannot set up logger")
	}

	yahoo, placeFinder, err := app.NewGeocoders(config)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create geocoders")
	}

	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// Lookup history is only available with a database.
	var geoCodeService *service.GeoCodeService
	if config.DBSource != "" {
		repo, closeDB, err := app.OpenRepository(context.Background(), config.DBSource)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer closeDB()

		geoCodeService = service.NewGeoCodeService(yahoo, placeFinder, repo)
		reverseGeocodeHandler := handler.NewReverseGeocodeHandler(service.NewReverseGeoCodeService(repo))
		historyHandler := handler.NewHistoryHandler(service.NewHistoryService(repo))

		r.GET("/reverse-geocode", reverseGeocodeHandler.ReverseGeocode)
		r.GET("/history", historyHandler.History)
	} else {
		log.Warn().Msg("DB_SOURCE not set, lookup history disabled")
		geoCodeService = service.NewGeoCodeService(yahoo, placeFinder, nil)
	}

	geoCodeHandler := handler.NewGeoCodeHandler(geoCodeService)
	r.GET("/geocode", geoCodeHandler.GeoCode)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Info().Str("address", config.ServerAddress).Msg("starting server")
	if err := http.ListenAndServe(config.ServerAddress, cors.Default().Handler(r)); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
