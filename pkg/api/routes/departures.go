package routes

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/ovdepartures/pkg/cachedresults"
	"github.com/travigo/ovdepartures/pkg/config"
	"github.com/travigo/ovdepartures/pkg/departures"
	"github.com/travigo/ovdepartures/pkg/pipeline"
)

const defaultIdentifier = "web-api"

type DeparturesHandler struct {
	Pipeline *pipeline.Pipeline
	Cache    *cachedresults.Cache
}

func DeparturesRouter(router fiber.Router, handler *DeparturesHandler) {
	router.Get("/", handler.getDepartures)
	router.Post("/", handler.postDepartures)
}

func (h *DeparturesHandler) getDepartures(c *fiber.Ctx) error {
	request := pipeline.Request{
		Identifier: c.Query("identifier", defaultIdentifier),
		Config: config.Config{
			TimingPointCode:    c.Query("timingpoint"),
			StopAreaCode:       c.Query("stoparea"),
			ShowOnlyDepartures: queryFlag(c, "departuresonly"),
			ShowTownName:       queryFlag(c, "town"),
			Debug:              queryFlag(c, "debug"),
			Filter:             c.Query("filter"),
		},
	}

	// destinations= with no value explicitly disables the default destination filter
	if c.Context().QueryArgs().Has("destinations") {
		request.Config.Destinations = []string{}
		if destinations := c.Query("destinations"); destinations != "" {
			request.Config.Destinations = strings.Split(destinations, ",")
		}
	}

	if request.Config.TimingPointCode == "" && request.Config.StopAreaCode == "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "A timingpoint or stoparea must be provided",
		})
	}

	return h.respond(c, request)
}

func (h *DeparturesHandler) postDepartures(c *fiber.Ctx) error {
	var request pipeline.Request
	if err := c.BodyParser(&request); err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Request body must be a departures request",
		})
	}

	if request.Identifier == "" {
		request.Identifier = defaultIdentifier
	}

	return h.respond(c, request)
}

func queryFlag(c *fiber.Ctx, key string) *bool {
	if c.Query(key) == "" {
		return nil
	}

	return config.Bool(c.QueryBool(key))
}

func (h *DeparturesHandler) respond(c *fiber.Ctx, request pipeline.Request) error {
	view := c.Query("view", "basic")
	if view != "basic" && view != "compact" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter view should be basic or compact",
		})
	}

	var result pipeline.Result
	var cached bool

	// Debug requests always run so their skip logs are written
	if config.Enabled(request.Config.Debug) {
		c.Set("X-Cache", "BYPASS")

		result = h.Pipeline.Run(c.Context(), request)
	} else if result, cached = h.Cache.Get(c.Context(), request); cached {
		c.Set("X-Cache", "HIT")
	} else {
		c.Set("X-Cache", "MISS")

		result = h.Pipeline.Run(c.Context(), request)
		h.Cache.Set(c.Context(), request, result)
	}

	if result.Failed() {
		c.Status(fiber.StatusBadGateway)
		return c.JSON(result)
	}

	if result.Data == nil {
		result.Data = departures.Departures{}
	}

	departuresReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{view},
	}, result.Data)

	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sheriff could not reduce departures",
		})
	}

	return c.JSON(fiber.Map{
		"identifier": result.Identifier,
		"data":       departuresReduced,
	})
}
