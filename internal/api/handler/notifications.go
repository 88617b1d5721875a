package handler

import (
	"encoding/json"
	"net/http"

	"github.com/meliboard/meliboard-api/infrastructure/repository"
	"github.com/meliboard/meliboard-api/internal/domain"
	"github.com/meliboard/meliboard-api/internal/usecases/aggregating"
	"github.com/meliboard/meliboard-api/pkg/log"
)

// MeliNotifications recebe o webhook do Mercado Livre. Responde sempre 200:
// qualquer outro status faz a plataforma reenfileirar a notificação.
func MeliNotifications(tokenRepo repository.MeliTokenRepository, aggregator aggregating.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		notification := &domain.Notification{}
		if err := json.NewDecoder(r.Body).Decode(notification); err != nil {
			logger.WithError(err).Warn("meli: invalid notification payload")
			w.WriteHeader(http.StatusOK)
			return
		}

		logger.WithFields(log.Fields{
			"topic":    notification.Topic,
			"resource": notification.Resource,
			"user_id":  notification.UserID,
		}).Info("meli: notification received")

		if !notification.KnownTopic() {
			w.WriteHeader(http.StatusOK)
			return
		}

		switch notification.Topic {
		case domain.TopicOrders, domain.TopicShipments:
			// Vendas mudaram: o cache do vendedor fica obsoleto
			record, err := tokenRepo.GetByMeliUserID(notification.UserID)
			if err != nil {
				logger.WithError(err).Warn("meli: failed to resolve notification owner")
				break
			}
			if record != nil {
				aggregator.InvalidateUser(record.UserID)
			}
		case domain.TopicItems, domain.TopicQuestions, domain.TopicMessages:
			// Reconhecidos mas sem efeito no dashboard de vendas
		}

		w.WriteHeader(http.StatusOK)
	})
}
