package handler

import (
	"encoding/json"
	"net/http"

	"github.com/meliboard/meliboard-api/internal/usecases/connecting"
	"github.com/meliboard/meliboard-api/pkg/apiErrors"
	"github.com/meliboard/meliboard-api/pkg/log"
)

// MeliAuthorizationURL monta a URL de autorização OAuth que o front-end abre
// para iniciar a conexão da conta.
func MeliAuthorizationURL(connector connecting.Connector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		redirectURI := r.URL.Query().Get("redirect_uri")

		authURL, err := connector.AuthorizationURL(redirectURI)
		if err != nil {
			logger.WithError(err).Error("meli: failed to build authorization url")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar URL de autorização", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"url": authURL})
	})
}
