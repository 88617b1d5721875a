package dashclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	jsoniter "github.com/json-iterator/go"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/meliboard/meliboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// defaultCacheTTL é a validade das respostas retidas quando o consumidor não
// informa um TTL próprio.
const defaultCacheTTL = 5 * time.Minute

// ErrNotConnected indica que o cliente foi usado antes de SetConnection(true)
// ou depois da desconexão.
var ErrNotConnected = errors.New("conta não conectada")

// State é o estado observável do ciclo de carga do dashboard.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Client orquestra as chamadas de /v1/meli/data do lado do consumidor:
// deduplica chamadas concorrentes idênticas, evita recargas para a mesma
// requisição já carregada e reexecuta com espera exponencial quando o
// backend sinaliza limite de requisições.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authToken  string

	// Tentativas extras após uma resposta rate_limited.
	maxRateLimitRetries uint64
	retryInitialWait    time.Duration

	mu         sync.Mutex
	connected  bool
	generation uint64
	state      State

	// Respostas retidas por fingerprint da requisição, com expiração
	// preguiçosa: uma entrada vencida conta como miss na próxima leitura.
	responses *gocache.Cache

	inflight map[string]*inflightCall
	onChange func(State, *domain.DataResponse, error)
}

type inflightCall struct {
	done     chan struct{}
	response *domain.DataResponse
	err      error
}

// New cria o cliente. cacheTTL define a validade das respostas retidas;
// o servidor expõe o valor em Config.ClientCacheTTL(). Zero usa o padrão
// de cinco minutos.
func New(baseURL, authToken string, cacheTTL time.Duration) *Client {
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL:             baseURL,
		authToken:           authToken,
		maxRateLimitRetries: 3,
		retryInitialWait:    time.Second,
		state:               StateIdle,
		responses:           gocache.New(cacheTTL, 0),
		inflight:            map[string]*inflightCall{},
	}
}

// OnChange registra o callback chamado a cada transição de estado.
func (c *Client) OnChange(fn func(State, *domain.DataResponse, error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// State retorna o estado atual do ciclo de carga.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetConnection liga ou desliga o cliente. Desconectar invalida respostas em
// voo: resultados de uma geração anterior são descartados ao chegar.
func (c *Client) SetConnection(connected bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected == connected {
		return
	}

	c.connected = connected
	c.generation++
	c.responses.Flush()
	c.setStateLocked(StateIdle, nil, nil)
}

// Load busca os dados do dashboard. Chamadas concorrentes com a mesma
// requisição compartilham uma única ida ao backend, e repetir a requisição
// dentro da validade do cache devolve a resposta retida sem novo HTTP.
func (c *Client) Load(ctx context.Context, request *domain.DataRequest) (*domain.DataResponse, error) {
	fingerprint, err := fingerprintOf(request)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return nil, ErrNotConnected
	}

	if cached, found := c.responses.Get(fingerprint); found {
		c.mu.Unlock()
		return cached.(*domain.DataResponse), nil
	}

	if call, running := c.inflight[fingerprint]; running {
		c.mu.Unlock()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-call.done:
			return call.response, call.err
		}
	}

	call := &inflightCall{done: make(chan struct{})}
	c.inflight[fingerprint] = call
	generation := c.generation
	c.setStateLocked(StateLoading, nil, nil)
	c.mu.Unlock()

	response, err := c.fetchWithRetry(ctx, request)

	call.response = response
	call.err = err
	close(call.done)

	c.mu.Lock()
	delete(c.inflight, fingerprint)

	// Resposta de uma geração anterior (desconectou no meio): descartar
	if c.generation != generation {
		c.mu.Unlock()
		return nil, ErrNotConnected
	}

	if err != nil {
		c.setStateLocked(StateError, nil, err)
		c.mu.Unlock()
		return nil, err
	}

	c.responses.SetDefault(fingerprint, response)
	c.setStateLocked(StateSuccess, response, nil)
	c.mu.Unlock()

	return response, nil
}

// Refresh descarta a resposta retida da requisição e recarrega ignorando o
// cache do servidor.
func (c *Client) Refresh(ctx context.Context, request *domain.DataRequest) (*domain.DataResponse, error) {
	fresh := *request
	fresh.UseCache = false

	for _, variant := range []*domain.DataRequest{request, &fresh} {
		if fingerprint, err := fingerprintOf(variant); err == nil {
			c.mu.Lock()
			c.responses.Delete(fingerprint)
			c.mu.Unlock()
		}
	}

	return c.Load(ctx, &fresh)
}

// fetchWithRetry chama o backend e reexecuta com espera exponencial limitada
// quando o envelope sinaliza rate_limited.
func (c *Client) fetchWithRetry(ctx context.Context, request *domain.DataRequest) (*domain.DataResponse, error) {
	var response *domain.DataResponse

	wait := backoff.NewExponentialBackOff()
	wait.InitialInterval = c.retryInitialWait

	operation := func() error {
		fetched, err := c.fetch(ctx, request)
		if err != nil {
			return backoff.Permanent(err)
		}

		if !fetched.Success && fetched.Message == domain.MessageRateLimited {
			return errors.New(domain.MessageRateLimited)
		}

		response = fetched
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(wait, c.maxRateLimitRetries), ctx))
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (c *Client) fetch(ctx context.Context, request *domain.DataRequest) (*domain.DataResponse, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao serializar requisição")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/meli/data", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar requisição")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao chamar o backend")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler resposta")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("resposta inesperada do backend: %d", resp.StatusCode)
	}

	response := &domain.DataResponse{}
	if err := json.Unmarshal(body, response); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar resposta")
	}

	return response, nil
}

// setStateLocked exige c.mu. O callback roda fora do lock.
func (c *Client) setStateLocked(state State, response *domain.DataResponse, err error) {
	c.state = state
	if c.onChange != nil {
		go c.onChange(state, response, err)
	}
}

func fingerprintOf(request *domain.DataRequest) (string, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return "", errors.Wrap(err, "erro ao calcular fingerprint da requisição")
	}
	return string(payload), nil
}
