package handler

import (
	"encoding/json"
	"net/http"

	"github.com/meliboard/meliboard-api/internal/usecases/aggregating"
	"github.com/meliboard/meliboard-api/internal/usecases/connecting"
	"github.com/meliboard/meliboard-api/pkg/apiErrors"
	"github.com/meliboard/meliboard-api/pkg/log"
	"github.com/meliboard/meliboard-api/pkg/middleware"
)

type disconnectMeliResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// DisconnectMeli revoga a autorização, remove os tokens e descarta o cache
// do usuário. Desconectar é idempotente: desconectar sem conexão é sucesso.
func DisconnectMeli(connector connecting.Connector, aggregator aggregating.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := middleware.UserFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		logger.WithField("user_id", claims.UserID).Info("meli: disconnecting account")

		w.Header().Set("Content-Type", "application/json")

		if err := connector.Disconnect(r.Context(), claims.UserID); err != nil {
			logger.WithError(err).WithField("user_id", claims.UserID).Error("meli: disconnect failed")
			json.NewEncoder(w).Encode(disconnectMeliResponse{Success: false, Message: err.Error()})
			return
		}

		aggregator.InvalidateUser(claims.UserID)

		json.NewEncoder(w).Encode(disconnectMeliResponse{Success: true})
	})
}
