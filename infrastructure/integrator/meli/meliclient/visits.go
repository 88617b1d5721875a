package meliclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/meliboard/meliboard-api/internal/domain"
)

type userVisitsResponse struct {
	UserID      int64 `json:"user_id"`
	TotalVisits int   `json:"total_visits"`
}

// GetUserVisits consulta o total de visitas aos anúncios do vendedor no
// intervalo. Quando este endpoint falha, o agregador cai para a estimativa.
func (c *MeliClient) GetUserVisits(ctx context.Context, accessToken string, meliUserID int64, window domain.DateWindow) (int, error) {
	params := url.Values{}
	params.Set("date_from", window.FromISO())
	params.Set("date_to", window.ToISO())

	endpoint := fmt.Sprintf("%s/users/%d/items_visits?%s", c.cfg.APIURL, meliUserID, params.Encode())

	body, err := c.Request(ctx, http.MethodGet, endpoint, bearerHeader(accessToken), nil)
	if err != nil {
		return 0, err
	}

	visits := &userVisitsResponse{}
	if err := json.Unmarshal(body, visits); err != nil {
		return 0, errors.Wrap(err, "erro ao decodificar resposta de items_visits")
	}

	return visits.TotalVisits, nil
}
