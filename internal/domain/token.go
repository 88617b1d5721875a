package domain

import "time"

// TokenRecord guarda as credenciais OAuth de um usuário do dashboard junto ao
// Mercado Livre. Existe no máximo um registro vivo por user_id (upsert).
type TokenRecord struct {
	UserID       string    `json:"user_id"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	MeliUserID   int64     `json:"meli_user_id"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Expired indica se o token de acesso precisa ser renovado antes de qualquer
// chamada ao Mercado Livre.
func (t *TokenRecord) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Claims são as claims do token emitido pelo provedor de identidade do
// dashboard. O user_id vem no subject.
type Claims struct {
	UserID string
	Email  string
}
