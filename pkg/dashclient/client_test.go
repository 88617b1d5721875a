package dashclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meliboard/meliboard-api/internal/config"
	"github.com/meliboard/meliboard-api/internal/domain"
)

func successBody() string {
	return `{"success":true,"is_connected":true,"meli_user_id":"987654","batch_results":[],"dashboard_data":{},"has_dashboard_data":true}`
}

func newConnectedClient(serverURL string) *Client {
	client := New(serverURL, "token", 0)
	client.retryInitialWait = time.Millisecond
	client.SetConnection(true)
	return client
}

func TestLoadRequiresConnection(t *testing.T) {
	client := New("http://localhost:0", "token", 0)

	_, err := client.Load(context.Background(), &domain.DataRequest{UserID: "user-1"})

	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestLoad(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/meli/data", r.URL.Path)
		require.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		w.Write([]byte(successBody()))
	}))
	defer server.Close()

	client := newConnectedClient(server.URL)

	response, err := client.Load(context.Background(), &domain.DataRequest{UserID: "user-1"})

	require.NoError(t, err)
	assert.True(t, response.Success)
	assert.Equal(t, "987654", response.MeliUserID)
	assert.Equal(t, StateSuccess, client.State())
}

func TestLoadDeduplicatesConcurrentCalls(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		<-release
		w.Write([]byte(successBody()))
	}))
	defer server.Close()

	client := newConnectedClient(server.URL)
	request := &domain.DataRequest{UserID: "user-1"}

	var wg sync.WaitGroup
	responses := make([]*domain.DataResponse, 2)
	errs := make([]error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			responses[index], errs[index] = client.Load(context.Background(), request)
		}(i)
	}

	// Dá tempo das duas chamadas entrarem antes do servidor responder
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < 2; i++ {
		require.NoError(t, errs[i])
		assert.True(t, responses[i].Success)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestLoadSkipsReloadForSameRequest(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(successBody()))
	}))
	defer server.Close()

	client := newConnectedClient(server.URL)
	request := &domain.DataRequest{UserID: "user-1"}

	first, err := client.Load(context.Background(), request)
	require.NoError(t, err)

	second, err := client.Load(context.Background(), request)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestLoadRefetchesAfterCacheExpiry(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(successBody()))
	}))
	defer server.Close()

	client := New(server.URL, "token", 20*time.Millisecond)
	client.SetConnection(true)
	request := &domain.DataRequest{UserID: "user-1"}

	_, err := client.Load(context.Background(), request)
	require.NoError(t, err)

	// Dentro da validade a resposta retida é reaproveitada
	_, err = client.Load(context.Background(), request)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	time.Sleep(50 * time.Millisecond)

	// Vencida, a entrada vira miss e o backend é chamado de novo
	_, err = client.Load(context.Background(), request)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestNewUsesConfiguredCacheTTL(t *testing.T) {
	cfg := &config.Config{Cache: config.Cache{ClientTTLMinutes: 5}}

	client := New("http://localhost:0", "token", cfg.ClientCacheTTL())

	assert.Equal(t, 5*time.Minute, cfg.ClientCacheTTL())
	assert.NotNil(t, client.responses)
}

func TestLoadReloadsForDifferentRequest(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(successBody()))
	}))
	defer server.Close()

	client := newConnectedClient(server.URL)

	_, err := client.Load(context.Background(), &domain.DataRequest{UserID: "user-1"})
	require.NoError(t, err)

	_, err = client.Load(context.Background(), &domain.DataRequest{UserID: "user-1", PrevPeriod: true})
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestLoadRetriesWhenRateLimited(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.Write([]byte(`{"success":false,"message":"rate_limited","is_connected":true,"batch_results":[],"dashboard_data":{}}`))
			return
		}
		w.Write([]byte(successBody()))
	}))
	defer server.Close()

	client := newConnectedClient(server.URL)

	response, err := client.Load(context.Background(), &domain.DataRequest{UserID: "user-1"})

	require.NoError(t, err)
	assert.True(t, response.Success)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestLoadGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"success":false,"message":"rate_limited","is_connected":true,"batch_results":[],"dashboard_data":{}}`))
	}))
	defer server.Close()

	client := newConnectedClient(server.URL)

	_, err := client.Load(context.Background(), &domain.DataRequest{UserID: "user-1"})

	require.Error(t, err)
	// Chamada original mais as tentativas extras
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
	assert.Equal(t, StateError, client.State())
}

func TestLoadDiscardsResultAfterDisconnect(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(successBody()))
	}))
	defer server.Close()

	client := newConnectedClient(server.URL)

	errCh := make(chan error, 1)
	go func() {
		_, err := client.Load(context.Background(), &domain.DataRequest{UserID: "user-1"})
		errCh <- err
	}()

	time.Sleep(50 * time.Millisecond)
	client.SetConnection(false)
	close(release)

	assert.ErrorIs(t, <-errCh, ErrNotConnected)
	assert.Equal(t, StateIdle, client.State())
}

func TestRefreshForcesNewFetchWithoutServerCache(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		request := &domain.DataRequest{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(request))
		if atomic.LoadInt32(&calls) == 2 {
			assert.False(t, request.UseCache)
		}

		w.Write([]byte(successBody()))
	}))
	defer server.Close()

	client := newConnectedClient(server.URL)
	request := &domain.DataRequest{UserID: "user-1", UseCache: true}

	_, err := client.Load(context.Background(), request)
	require.NoError(t, err)

	_, err = client.Refresh(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestOnChangeReceivesTransitions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(successBody()))
	}))
	defer server.Close()

	client := newConnectedClient(server.URL)

	var mu sync.Mutex
	states := []State{}
	client.OnChange(func(state State, _ *domain.DataResponse, _ error) {
		mu.Lock()
		states = append(states, state)
		mu.Unlock()
	})

	_, err := client.Load(context.Background(), &domain.DataRequest{UserID: "user-1"})
	require.NoError(t, err)

	// O callback roda em goroutine própria
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(states) == 2 && states[0] == StateLoading && states[1] == StateSuccess
	}, time.Second, 10*time.Millisecond)
}
