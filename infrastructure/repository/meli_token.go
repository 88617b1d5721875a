package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/meliboard/meliboard-api/infrastructure/database/postgres"
	"github.com/meliboard/meliboard-api/internal/domain"
)

const (
	meliTokensTable = "meli_tokens mt"
)

type MeliTokenRepository interface {
	GetByUserID(userID string) (*domain.TokenRecord, error)
	GetByMeliUserID(meliUserID int64) (*domain.TokenRecord, error)
	SaveOrUpdate(record *domain.TokenRecord) error
	DeleteByUserID(userID string) error
	ListExpiringBefore(deadline time.Time) ([]*domain.TokenRecord, error)
}

type meliTokenRepository struct {
	conn *postgres.Connection
}

func NewMeliTokenRepository(conn *postgres.Connection) MeliTokenRepository {
	return &meliTokenRepository{
		conn: conn,
	}
}

func (r *meliTokenRepository) GetByUserID(userID string) (*domain.TokenRecord, error) {
	query, args, err := squirrel.
		Select("mt.user_id, mt.access_token, mt.refresh_token, mt.meli_user_id, mt.expires_at, mt.created_at, mt.updated_at").
		From(meliTokensTable).
		Where(squirrel.Eq{"mt.user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	record, err := r.scanToken(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear token: %w", err)
	}

	return record, nil
}

// GetByMeliUserID resolve o usuário dono de uma conta do Mercado Livre,
// usado pelo webhook de notificações para invalidar o cache certo.
func (r *meliTokenRepository) GetByMeliUserID(meliUserID int64) (*domain.TokenRecord, error) {
	query, args, err := squirrel.
		Select("mt.user_id, mt.access_token, mt.refresh_token, mt.meli_user_id, mt.expires_at, mt.created_at, mt.updated_at").
		From(meliTokensTable).
		Where(squirrel.Eq{"mt.meli_user_id": meliUserID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	record, err := r.scanToken(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear token: %w", err)
	}

	return record, nil
}

// SaveOrUpdate insere o token do usuário ou substitui o existente.
// Reconectar uma conta sempre sobrescreve o par de tokens anterior.
func (r *meliTokenRepository) SaveOrUpdate(record *domain.TokenRecord) error {
	query := squirrel.StatementBuilder.
		Insert("meli_tokens").
		Columns("user_id", "access_token", "refresh_token", "meli_user_id", "expires_at").
		Values(
			record.UserID,
			record.AccessToken,
			record.RefreshToken,
			record.MeliUserID,
			record.ExpiresAt,
		).
		Suffix(`
			ON CONFLICT (user_id) DO UPDATE SET
				access_token = EXCLUDED.access_token,
				refresh_token = EXCLUDED.refresh_token,
				meli_user_id = EXCLUDED.meli_user_id,
				expires_at = EXCLUDED.expires_at,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// DeleteByUserID remove o token do usuário. Não é erro se nada existir.
func (r *meliTokenRepository) DeleteByUserID(userID string) error {
	query, args, err := squirrel.
		Delete("meli_tokens").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// ListExpiringBefore retorna os tokens que expiram antes do prazo informado,
// usados pela rotina de renovação antecipada.
func (r *meliTokenRepository) ListExpiringBefore(deadline time.Time) ([]*domain.TokenRecord, error) {
	query, args, err := squirrel.
		Select("mt.user_id, mt.access_token, mt.refresh_token, mt.meli_user_id, mt.expires_at, mt.created_at, mt.updated_at").
		From(meliTokensTable).
		Where(squirrel.Lt{"mt.expires_at": deadline}).
		OrderBy("mt.expires_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.TokenRecord, 0)
	for rows.Next() {
		record, err := r.scanTokenRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear tokens: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar tokens: %w", err)
	}

	return records, nil
}

func (r *meliTokenRepository) scanToken(row *sql.Row) (*domain.TokenRecord, error) {
	record := &domain.TokenRecord{}

	err := row.Scan(
		&record.UserID,
		&record.AccessToken,
		&record.RefreshToken,
		&record.MeliUserID,
		&record.ExpiresAt,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (r *meliTokenRepository) scanTokenRows(rows *sql.Rows) (*domain.TokenRecord, error) {
	record := &domain.TokenRecord{}

	err := rows.Scan(
		&record.UserID,
		&record.AccessToken,
		&record.RefreshToken,
		&record.MeliUserID,
		&record.ExpiresAt,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return record, nil
}
