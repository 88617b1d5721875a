package aggregating

import (
	"context"

	"github.com/meliboard/meliboard-api/internal/domain"
)

// Service agrega pedidos do Mercado Livre e monta a resposta consolidada do
// dashboard. Process nunca retorna erro: falhas viajam no envelope com
// success:false e o HTTP é sempre 200.
type Service interface {
	Process(ctx context.Context, request *domain.DataRequest) *domain.DataResponse
	InvalidateUser(userID string)
}
