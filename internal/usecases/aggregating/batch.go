package aggregating

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/meliboard/meliboard-api/internal/domain"
)

// runBatchRequests executa as chamadas encaminhadas pelo cliente em lotes de
// BatchMaxConcurrent, com uma pausa entre lotes para não estourar o limite de
// requisições do Mercado Livre. Falhas individuais não derrubam o conjunto.
func (s *service) runBatchRequests(ctx context.Context, record *domain.TokenRecord, requests []domain.BatchRequest) []domain.BatchResult {
	results := make([]domain.BatchResult, len(requests))
	if len(requests) == 0 {
		return results
	}

	chunkSize := s.cfg.BatchMaxConcurrent
	if chunkSize <= 0 {
		chunkSize = 1
	}
	pause := time.Duration(s.cfg.BatchPauseMS) * time.Millisecond

	for start := 0; start < len(requests); start += chunkSize {
		end := start + chunkSize
		if end > len(requests) {
			end = len(requests)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(index int) {
				defer wg.Done()
				results[index] = s.runBatchRequest(ctx, record, requests[index])
			}(i)
		}
		wg.Wait()

		if end < len(requests) && pause > 0 {
			select {
			case <-ctx.Done():
				for i := end; i < len(requests); i++ {
					results[i] = domain.ErrBatchResult(requests[i].Endpoint, ctx.Err())
				}
				return results
			case <-time.After(pause):
			}
		}
	}

	return results
}

func (s *service) runBatchRequest(ctx context.Context, record *domain.TokenRecord, request domain.BatchRequest) domain.BatchResult {
	if request.Endpoint == "" {
		return domain.ErrBatchResult(request.Endpoint, errors.New("endpoint é obrigatório"))
	}

	if request.Method != "" && request.Method != http.MethodGet {
		return domain.ErrBatchResult(request.Endpoint, errors.Errorf("método não suportado: %s", request.Method))
	}

	data, err := s.client.Get(ctx, record.AccessToken, request.Endpoint, request.Params)
	if err != nil {
		logrus.WithError(err).Warnf("aggregating: batch request %s falhou", request.Endpoint)
		return domain.ErrBatchResult(request.Endpoint, err)
	}

	return domain.OkBatchResult(request.Endpoint, data)
}
