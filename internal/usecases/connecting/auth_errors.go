package connecting

import "errors"

// Erros da integração com o Mercado Livre
var (
	ErrNotConnected       = errors.New("conta do Mercado Livre não conectada")
	ErrReconnectRequired  = errors.New("não foi possível renovar o token, reconecte sua conta do Mercado Livre")
	ErrExchangeFailed     = errors.New("não foi possível trocar o código de autorização")
	ErrMissingCode        = errors.New("código de autorização ausente")
	ErrMissingRedirectURI = errors.New("redirect_uri ausente")
)

// IsConnectionError indica erros que o handler deve devolver no envelope
// de sucesso parcial (HTTP 200 com success:false) em vez de um status de erro.
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrNotConnected) ||
		errors.Is(err, ErrReconnectRequired) ||
		errors.Is(err, ErrExchangeFailed)
}
