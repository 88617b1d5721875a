package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/meliboard/meliboard-api/internal/scheduler"
	"github.com/meliboard/meliboard-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeTokenRefresh = "token-refresh"
	CronJobTypeAll          = "all"
)

// CronJobServices contém os serviços de cron que podem ser disparados manualmente
type CronJobServices struct {
	TokenRefreshSyncService *scheduler.TokenRefreshSyncService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeTokenRefresh:
			if services.TokenRefreshSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de renovação de tokens não disponível", nil)
				return
			}
			services.TokenRefreshSyncService.TriggerManualSync()

		case CronJobTypeAll:
			if services.TokenRefreshSyncService != nil {
				services.TokenRefreshSyncService.TriggerManualSync()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: token-refresh, all", nil)
			return
		}

		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{
			"token-refresh": services.TokenRefreshSyncService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
