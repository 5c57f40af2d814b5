package repository

import (
	"context"
	"errors"
	"time"

	"tyreplus-backend/internal/domain/token"
	"tyreplus-backend/internal/infra"
	"tyreplus-backend/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RefreshTokenRepository struct {
	db db.DBTX
}

func NewRefreshTokenRepository(dbtx db.DBTX) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: dbtx}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, refresh *token.Refresh) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO refresh_tokens (id, identity_id, token_hash, revoked, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		refresh.ID(), refresh.IdentityID(), refresh.TokenHash(),
		refresh.Revoked(), refresh.CreatedAt(), refresh.ExpiresAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create refresh token", err)
	}
	return nil
}

func (r *RefreshTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*token.Refresh, error) {
	var (
		id         uuid.UUID
		identityID uuid.UUID
		revoked    bool
		createdAt  time.Time
		expiresAt  time.Time
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, identity_id, revoked, created_at, expires_at
		FROM refresh_tokens
		WHERE token_hash = $1`, tokenHash,
	).Scan(&id, &identityID, &revoked, &createdAt, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("refresh token not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find refresh token", err)
	}
	return token.Reconstruct(id, identityID, tokenHash, revoked, createdAt, expiresAt), nil
}

// RevokeByHash affects zero rows for unknown tokens; logout stays
// idempotent.
func (r *RefreshTokenRepository) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE refresh_tokens SET revoked = TRUE WHERE token_hash = $1`, tokenHash)
	if err != nil {
		return infra.WrapRepoErr("failed to revoke refresh token", err)
	}
	return nil
}
