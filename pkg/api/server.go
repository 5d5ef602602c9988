package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/ovdepartures/pkg/api/routes"
	"github.com/travigo/ovdepartures/pkg/cachedresults"
	"github.com/travigo/ovdepartures/pkg/pipeline"
)

func NewApp(p *pipeline.Pipeline, resultsCache *cachedresults.Cache) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.DeparturesRouter(group.Group("/departures"), &routes.DeparturesHandler{
		Pipeline: p,
		Cache:    resultsCache,
	})

	return webApp
}

func SetupServer(listen string, p *pipeline.Pipeline, resultsCache *cachedresults.Cache) error {
	return NewApp(p, resultsCache).Listen(listen)
}
