package meliclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// TokenGrant é o resultado de uma troca ou renovação de token no
// endpoint /oauth/token do Mercado Livre.
type TokenGrant struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	Scope        string `json:"scope"`
	UserID       int64  `json:"user_id"`
	RefreshToken string `json:"refresh_token"`
}

func formHeader() http.Header {
	header := http.Header{}
	header.Set("Content-Type", "application/x-www-form-urlencoded")
	header.Set("Accept", "application/json")
	return header
}

// ExchangeCode troca o código de autorização OAuth por um par de tokens.
func (c *MeliClient) ExchangeCode(ctx context.Context, code, redirectURI string) (*TokenGrant, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.cfg.AppID)
	form.Set("client_secret", c.cfg.AppSecret)
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)

	return c.requestGrant(ctx, form)
}

// RefreshToken obtém um novo par de tokens a partir do refresh token.
// O Mercado Livre invalida o refresh token usado, então o retornado
// precisa ser persistido pelo chamador.
func (c *MeliClient) RefreshToken(ctx context.Context, refreshToken string) (*TokenGrant, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", c.cfg.AppID)
	form.Set("client_secret", c.cfg.AppSecret)
	form.Set("refresh_token", refreshToken)

	return c.requestGrant(ctx, form)
}

func (c *MeliClient) requestGrant(ctx context.Context, form url.Values) (*TokenGrant, error) {
	endpoint := c.cfg.APIURL + "/oauth/token"

	body, err := c.Request(ctx, http.MethodPost, endpoint, formHeader(), []byte(form.Encode()))
	if err != nil {
		return nil, err
	}

	grant := &TokenGrant{}
	if err := json.Unmarshal(body, grant); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar resposta do oauth/token")
	}

	// Sem o refresh_token o registro persistido nunca conseguiria renovar,
	// então o par incompleto é rejeitado já aqui.
	if grant.AccessToken == "" || grant.RefreshToken == "" {
		return nil, errors.New("resposta do oauth/token sem o par access_token/refresh_token")
	}

	return grant, nil
}

// RevokeGrant revoga a autorização da aplicação para o usuário.
func (c *MeliClient) RevokeGrant(ctx context.Context, accessToken string, meliUserID int64) error {
	endpoint := fmt.Sprintf("%s/users/%d/applications/%s", c.cfg.APIURL, meliUserID, c.cfg.AppID)

	_, err := c.Request(ctx, http.MethodDelete, endpoint, bearerHeader(accessToken), nil)
	return err
}
