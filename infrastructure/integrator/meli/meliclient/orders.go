package meliclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/meliboard/meliboard-api/internal/domain"
)

// SearchOrders busca uma página de pedidos do vendedor no intervalo de datas.
// A API filtra por date_created; pedidos com date_closed dentro da janela são
// refinados localmente pelo agregador.
func (c *MeliClient) SearchOrders(ctx context.Context, accessToken string, meliUserID int64, window domain.DateWindow, limit, offset int) (*domain.OrderSearchPage, error) {
	params := url.Values{}
	params.Set("seller", strconv.FormatInt(meliUserID, 10))
	params.Set("order.status", domain.OrderStatusPaid)
	params.Set("order.date_created.from", window.FromISO())
	params.Set("order.date_created.to", window.ToISO())
	params.Set("sort", "date_desc")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	endpoint := fmt.Sprintf("%s/orders/search?%s", c.cfg.APIURL, params.Encode())

	body, err := c.Request(ctx, http.MethodGet, endpoint, bearerHeader(accessToken), nil)
	if err != nil {
		return nil, err
	}

	page := &domain.OrderSearchPage{}
	if err := json.Unmarshal(body, page); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar resposta de orders/search")
	}

	return page, nil
}
