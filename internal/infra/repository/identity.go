package repository

import (
	"context"
	"errors"
	"time"

	"tyreplus-backend/internal/domain/identity"
	"tyreplus-backend/internal/infra"
	"tyreplus-backend/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type IdentityRepository struct {
	db db.DBTX
}

func NewIdentityRepository(dbtx db.DBTX) *IdentityRepository {
	return &IdentityRepository{db: dbtx}
}

type identityRow struct {
	ID           uuid.UUID
	Mobile       string
	Role         string
	Name         string
	Email        *string
	PasswordHash *string
	VerifiedAt   *time.Time
	CreatedAt    time.Time
}

const identityColumns = `id, mobile, role, name, email, password_hash, verified_at, created_at`

func (r *IdentityRepository) Create(ctx context.Context, ident *identity.Identity) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO identities (id, mobile, role, name, email, password_hash, verified_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		ident.ID(), ident.Mobile().String(), ident.Role().String(), ident.Name(),
		ident.Email(), ident.PasswordHash(), ident.VerifiedAt(), ident.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create identity", err)
	}
	return nil
}

func (r *IdentityRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Identity, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+identityColumns+`
		FROM identities
		WHERE id = $1`, id)
	return r.scan(row, "identity not found", "failed to find identity by id")
}

func (r *IdentityRepository) FindByMobileAndRole(ctx context.Context, mobile identity.Mobile, role identity.Role) (*identity.Identity, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+identityColumns+`
		FROM identities
		WHERE mobile = $1 AND role = $2`, mobile.String(), role.String())
	return r.scan(row, "identity not found", "failed to find identity by mobile")
}

func (r *IdentityRepository) FindByEmail(ctx context.Context, email string) (*identity.Identity, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+identityColumns+`
		FROM identities
		WHERE email = $1`, email)
	return r.scan(row, "identity not found", "failed to find identity by email")
}

func (r *IdentityRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE identities SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return infra.WrapRepoErr("failed to update password hash", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("identity not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *IdentityRepository) UpdateContact(ctx context.Context, id uuid.UUID, name string, email *string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE identities SET name = $2, email = $3 WHERE id = $1`, id, name, email)
	if err != nil {
		return infra.WrapRepoErr("failed to update identity contact", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("identity not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *IdentityRepository) scan(row pgx.Row, notFoundMsg, failMsg string) (*identity.Identity, error) {
	var ir identityRow
	err := row.Scan(&ir.ID, &ir.Mobile, &ir.Role, &ir.Name, &ir.Email, &ir.PasswordHash, &ir.VerifiedAt, &ir.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(notFoundMsg, err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr(failMsg, err)
	}
	return toIdentity(ir), nil
}

func toIdentity(ir identityRow) *identity.Identity {
	return identity.Reconstruct(
		ir.ID,
		identity.Mobile(ir.Mobile),
		identity.Role(ir.Role),
		ir.Name,
		ir.Email,
		ir.PasswordHash,
		ir.VerifiedAt,
		ir.CreatedAt,
	)
}
