package cache

import (
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/meliboard/meliboard-api/internal/domain"
)

// ResponseCache guarda respostas de agregação já montadas, evitando novas
// chamadas à API do Mercado Livre para a mesma janela de datas.
type ResponseCache interface {
	Get(key string) (*domain.DataResponse, bool)
	Set(key string, response *domain.DataResponse)
	Invalidate(userID string)
}

type responseCache struct {
	store *gocache.Cache
}

func NewResponseCache(ttl time.Duration) ResponseCache {
	return &responseCache{
		store: gocache.New(ttl, 2*ttl),
	}
}

// Key compõe a chave de cache por usuário, endpoints e janela de datas.
// O prefixo do usuário permite a invalidação por conta em Invalidate.
func Key(userID, fingerprint, fromISO, toISO string) string {
	return fmt.Sprintf("%s|%s|%s|%s", userID, fingerprint, fromISO, toISO)
}

func (c *responseCache) Get(key string) (*domain.DataResponse, bool) {
	value, found := c.store.Get(key)
	if !found {
		return nil, false
	}

	response, ok := value.(*domain.DataResponse)
	if !ok {
		return nil, false
	}

	return response, true
}

func (c *responseCache) Set(key string, response *domain.DataResponse) {
	c.store.SetDefault(key, response)
}

// Invalidate remove todas as entradas do usuário, usada quando um webhook
// sinaliza que os dados do vendedor mudaram.
func (c *responseCache) Invalidate(userID string) {
	prefix := userID + "|"
	for key := range c.store.Items() {
		if strings.HasPrefix(key, prefix) {
			c.store.Delete(key)
		}
	}
}
