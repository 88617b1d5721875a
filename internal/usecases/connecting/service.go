package connecting

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/meliboard/meliboard-api/infrastructure/integrator/meli/meliclient"
	"github.com/meliboard/meliboard-api/infrastructure/repository"
	"github.com/meliboard/meliboard-api/internal/config"
	"github.com/meliboard/meliboard-api/internal/domain"
	"github.com/meliboard/meliboard-api/pkg/utils"
)

// Margem de segurança descontada da expiração informada pelo Mercado Livre,
// para evitar usar um token a segundos de expirar.
const expirySafetyMargin = 5 * time.Minute

type Connector interface {
	Connect(ctx context.Context, userID, code, redirectURI string) (string, error)
	Disconnect(ctx context.Context, userID string) error
	TokenForUser(ctx context.Context, userID string) (*domain.TokenRecord, error)
	RefreshRecord(ctx context.Context, record *domain.TokenRecord) (*domain.TokenRecord, error)
	AuthorizationURL(redirectURI string) (string, error)
}

type Service struct {
	tokenRepo repository.MeliTokenRepository
	client    meliclient.Client
	cfg       *config.Meli

	// Relógio injetável para os testes de expiração.
	now func() time.Time
}

func NewService(tokenRepo repository.MeliTokenRepository, client meliclient.Client, cfg *config.Meli) *Service {
	return &Service{
		tokenRepo: tokenRepo,
		client:    client,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Connect troca o código de autorização OAuth pelo par de tokens e o
// persiste, sobrescrevendo qualquer conexão anterior do usuário.
// Retorna o ID do vendedor no Mercado Livre.
func (s *Service) Connect(ctx context.Context, userID, code, redirectURI string) (string, error) {
	if code == "" {
		return "", ErrMissingCode
	}
	if redirectURI == "" {
		return "", ErrMissingRedirectURI
	}

	grant, err := s.client.ExchangeCode(ctx, code, redirectURI)
	if err != nil {
		logrus.WithError(err).Error("Erro ao trocar o código de autorização")
		return "", ErrExchangeFailed
	}

	record := s.recordFromGrant(userID, grant)
	if err := s.tokenRepo.SaveOrUpdate(record); err != nil {
		return "", fmt.Errorf("erro ao salvar tokens: %w", err)
	}

	logrus.Infof("Conta do Mercado Livre %d conectada para o usuário %s", grant.UserID, userID)

	return strconv.FormatInt(grant.UserID, 10), nil
}

// Disconnect revoga a autorização no Mercado Livre e remove os tokens.
// A revogação remota é melhor esforço: a remoção local acontece mesmo
// quando a API recusa a revogação.
func (s *Service) Disconnect(ctx context.Context, userID string) error {
	record, err := s.tokenRepo.GetByUserID(userID)
	if err != nil {
		return fmt.Errorf("erro ao buscar tokens: %w", err)
	}
	if record == nil {
		return nil
	}

	if err := s.client.RevokeGrant(ctx, record.AccessToken, record.MeliUserID); err != nil {
		logrus.WithError(err).Warnf("Erro ao revogar autorização do usuário %s, removendo tokens locais mesmo assim", userID)
	}

	if err := s.tokenRepo.DeleteByUserID(userID); err != nil {
		return fmt.Errorf("erro ao remover tokens: %w", err)
	}

	logrus.Infof("Conta do Mercado Livre desconectada para o usuário %s", userID)

	return nil
}

// TokenForUser retorna o token de acesso válido do usuário, renovando-o
// uma única vez se estiver expirado. Falha na renovação exige reconexão.
func (s *Service) TokenForUser(ctx context.Context, userID string) (*domain.TokenRecord, error) {
	record, err := s.tokenRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar tokens: %w", err)
	}
	if record == nil {
		return nil, ErrNotConnected
	}

	if !record.Expired(s.now()) {
		return record, nil
	}

	refreshed, err := s.RefreshRecord(ctx, record)
	if err != nil {
		logrus.WithError(err).Errorf("Erro ao renovar token do usuário %s", userID)
		return nil, ErrReconnectRequired
	}

	return refreshed, nil
}

// RefreshRecord renova o par de tokens do registro e persiste o resultado.
func (s *Service) RefreshRecord(ctx context.Context, record *domain.TokenRecord) (*domain.TokenRecord, error) {
	grant, err := s.client.RefreshToken(ctx, record.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("erro ao renovar token: %w", err)
	}

	refreshed := s.recordFromGrant(record.UserID, grant)
	if err := s.tokenRepo.SaveOrUpdate(refreshed); err != nil {
		return nil, fmt.Errorf("erro ao salvar tokens renovados: %w", err)
	}

	return refreshed, nil
}

// AuthorizationURL monta a URL de autorização OAuth do Mercado Livre com um
// state aleatório para proteção contra CSRF.
func (s *Service) AuthorizationURL(redirectURI string) (string, error) {
	if redirectURI == "" {
		redirectURI = s.cfg.RedirectURI
	}

	state, err := utils.GenerateID()
	if err != nil {
		return "", fmt.Errorf("erro ao gerar state: %w", err)
	}

	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", s.cfg.AppID)
	params.Set("redirect_uri", redirectURI)
	params.Set("state", state)

	return s.cfg.AuthURL + "/authorization?" + params.Encode(), nil
}

func (s *Service) recordFromGrant(userID string, grant *meliclient.TokenGrant) *domain.TokenRecord {
	expiresAt := s.now().Add(time.Duration(grant.ExpiresIn) * time.Second)
	if grant.ExpiresIn > 0 {
		expiresAt = expiresAt.Add(-expirySafetyMargin)
	}

	return &domain.TokenRecord{
		UserID:       userID,
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		MeliUserID:   grant.UserID,
		ExpiresAt:    expiresAt,
	}
}
