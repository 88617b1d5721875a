package handler

import (
	"net/http"

	"github.com/meliboard/meliboard-api/infrastructure/repository"
	"github.com/meliboard/meliboard-api/internal/api/handler/router"
	"github.com/meliboard/meliboard-api/internal/usecases/aggregating"
	"github.com/meliboard/meliboard-api/internal/usecases/connecting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Meli retorna as rotas da integração com o Mercado Livre.
func Meli(connector connecting.Connector, aggregator aggregating.Service, tokenRepo repository.MeliTokenRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/meli/connect",
			Method:  http.MethodPost,
			Handler: ConnectMeli(connector),
		},
		{
			Path:    "/v1/meli/disconnect",
			Method:  http.MethodPost,
			Handler: DisconnectMeli(connector, aggregator),
		},
		{
			Path:    "/v1/meli/data",
			Method:  http.MethodPost,
			Handler: MeliData(aggregator),
		},
		{
			Path:    "/v1/meli/authorization-url",
			Method:  http.MethodGet,
			Handler: MeliAuthorizationURL(connector),
		},
		{
			Path:    "/v1/meli/notifications",
			Method:  http.MethodPost,
			Handler: MeliNotifications(tokenRepo, aggregator),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
