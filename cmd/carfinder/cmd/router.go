package cmd

import (
	"log/slog"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/donaldgifford/carfinder/api/openapi"
	"github.com/donaldgifford/carfinder/internal/api/handlers"
	"github.com/donaldgifford/carfinder/internal/api/middleware"
	"github.com/donaldgifford/carfinder/internal/engine"
	"github.com/donaldgifford/carfinder/internal/store"
)

// newRouter builds the echo instance serving probes, metrics and the huma
// API backed by eng.
func newRouter(log *slog.Logger, s store.Store, eng *engine.Engine, quota handlers.QuotaReporter, useLiveData bool) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	handlers.RegisterHealthRoutes(e, handlers.NewHealthHandler(s))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, openapi.Config(Version))
	registerAPIRoutes(api, s, eng, quota, useLiveData)
	openapi.RegisterRoutes(e, api.OpenAPI().Info.Title)

	return e
}

func registerAPIRoutes(api huma.API, s store.Store, eng *engine.Engine, quota handlers.QuotaReporter, useLiveData bool) {
	handlers.RegisterSearchRoutes(api, handlers.NewSearchHandler(eng, useLiveData))
	handlers.RegisterChatRoutes(api, handlers.NewChatHandler(eng, useLiveData))
	handlers.RegisterExtractRoutes(api, handlers.NewExtractHandler())
	handlers.RegisterSourcesRoutes(api, handlers.NewSourcesHandler(eng))
	handlers.RegisterRefreshRoutes(api, handlers.NewRefreshHandler(eng))
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(quota))
	handlers.RegisterVehicleRoutes(api, handlers.NewVehiclesHandler(s))
}
