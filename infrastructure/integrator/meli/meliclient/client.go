package meliclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/meliboard/meliboard-api/internal/config"
	"github.com/meliboard/meliboard-api/internal/domain"
)

// ErrRateLimited indica resposta 429 da API do Mercado Livre.
var ErrRateLimited = errors.New("limite de requisições do Mercado Livre atingido")

type Client interface {
	ExchangeCode(ctx context.Context, code, redirectURI string) (*TokenGrant, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenGrant, error)
	RevokeGrant(ctx context.Context, accessToken string, meliUserID int64) error
	SearchOrders(ctx context.Context, accessToken string, meliUserID int64, window domain.DateWindow, limit, offset int) (*domain.OrderSearchPage, error)
	GetUserVisits(ctx context.Context, accessToken string, meliUserID int64, window domain.DateWindow) (int, error)
	Get(ctx context.Context, accessToken, path string, params map[string]string) (json.RawMessage, error)
}

type MeliClient struct {
	httpClient *http.Client
	cfg        *config.Meli

	maxRetries int
	// Base da espera exponencial entre tentativas. Injetável para os testes.
	retryBaseDelay time.Duration
}

func NewClient(cfg *config.Meli, maxRetries int) *MeliClient {
	return &MeliClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cfg:            cfg,
		maxRetries:     maxRetries,
		retryBaseDelay: time.Second,
	}
}

// Request executa a requisição com novas tentativas em caso de falha.
// Cada tentativa que falha espera retryBaseDelay << tentativa antes da
// próxima (1s, 2s, 4s com a base padrão). Após esgotar as tentativas,
// retorna o último erro observado.
func (c *MeliClient) Request(ctx context.Context, method, rawURL string, header http.Header, body []byte) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		respBody, err := c.doOnce(ctx, method, rawURL, header, body)
		if err == nil {
			return respBody, nil
		}
		lastErr = err

		logrus.WithError(err).Warnf("Tentativa %d/%d falhou para %s %s", attempt+1, c.maxRetries, method, rawURL)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.retryBaseDelay * (1 << attempt)):
		}
	}

	return nil, lastErr
}

func (c *MeliClient) doOnce(ctx context.Context, method, rawURL string, header http.Header, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}
	if header != nil {
		req.Header = header.Clone()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao fazer a requisição")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler a resposta")
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("resposta inesperada do Mercado Livre: %d %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

func bearerHeader(accessToken string) http.Header {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+accessToken)
	header.Set("Accept", "application/json")
	return header
}

// Get faz uma chamada GET autenticada a um caminho arbitrário da API,
// usada pelos batch requests encaminhados pelo cliente de dashboard.
func (c *MeliClient) Get(ctx context.Context, accessToken, path string, params map[string]string) (json.RawMessage, error) {
	endpoint := c.cfg.APIURL + path
	if len(params) > 0 {
		values := url.Values{}
		for k, v := range params {
			values.Set(k, v)
		}
		endpoint = endpoint + "?" + values.Encode()
	}

	body, err := c.Request(ctx, http.MethodGet, endpoint, bearerHeader(accessToken), nil)
	if err != nil {
		return nil, err
	}

	return json.RawMessage(body), nil
}
