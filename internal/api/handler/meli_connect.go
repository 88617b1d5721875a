package handler

import (
	"encoding/json"
	"net/http"

	"github.com/meliboard/meliboard-api/internal/usecases/connecting"
	"github.com/meliboard/meliboard-api/pkg/apiErrors"
	"github.com/meliboard/meliboard-api/pkg/log"
	"github.com/meliboard/meliboard-api/pkg/middleware"
)

type connectMeliRequest struct {
	Code        string `json:"code"`
	RedirectURI string `json:"redirect_uri"`
}

type connectMeliResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	MeliUserID string `json:"meli_user_id,omitempty"`
}

// ConnectMeli troca o código de autorização OAuth e vincula a conta do
// Mercado Livre ao usuário autenticado.
func ConnectMeli(connector connecting.Connector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := middleware.UserFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		request := &connectMeliRequest{}
		if err := json.NewDecoder(r.Body).Decode(request); err != nil {
			logger.WithError(err).Warn("meli: invalid connect payload")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		logger.WithField("user_id", claims.UserID).Info("meli: connecting account")

		meliUserID, err := connector.Connect(r.Context(), claims.UserID, request.Code, request.RedirectURI)
		if err != nil {
			logger.WithError(err).WithField("user_id", claims.UserID).Warn("meli: connect failed")

			// Falhas de OAuth viajam no envelope com HTTP 200
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(connectMeliResponse{Success: false, Message: err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(connectMeliResponse{Success: true, MeliUserID: meliUserID})
	})
}
