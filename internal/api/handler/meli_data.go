package handler

import (
	"encoding/json"
	"net/http"

	"github.com/meliboard/meliboard-api/internal/domain"
	"github.com/meliboard/meliboard-api/internal/usecases/aggregating"
	"github.com/meliboard/meliboard-api/pkg/log"
	"github.com/meliboard/meliboard-api/pkg/middleware"
)

// MeliData agrega pedidos e executa os batch requests. O contrato é sempre
// HTTP 200 com um envelope bem formado; qualquer falha vai em success:false.
func MeliData(aggregator aggregating.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		w.Header().Set("Content-Type", "application/json")

		request := &domain.DataRequest{}
		if err := json.NewDecoder(r.Body).Decode(request); err != nil {
			logger.WithError(err).Warn("meli: invalid data payload")
			json.NewEncoder(w).Encode(domain.FailureDataResponse("corpo da requisição inválido", false))
			return
		}

		// A identidade vem sempre do token, nunca do corpo
		if claims, ok := middleware.UserFromContext(r.Context()); ok {
			request.UserID = claims.UserID
		}

		logger.WithFields(log.Fields{
			"user_id":        request.UserID,
			"batch_requests": len(request.BatchRequests),
			"use_cache":      request.UseCache,
		}).Info("meli: aggregating dashboard data")

		response := aggregator.Process(r.Context(), request)

		json.NewEncoder(w).Encode(response)
	})
}
