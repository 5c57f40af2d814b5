package repository

import (
	"context"
	"errors"
	"time"

	"tyreplus-backend/internal/domain/wallet"
	"tyreplus-backend/internal/infra"
	"tyreplus-backend/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PackageRepository struct {
	db db.DBTX
}

func NewPackageRepository(dbtx db.DBTX) *PackageRepository {
	return &PackageRepository{db: dbtx}
}

const packageColumns = `id, name, credits, bonus_credits, price_amount, currency, active, created_at`

func (r *PackageRepository) FindByID(ctx context.Context, id uuid.UUID) (*wallet.CreditPackage, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+packageColumns+`
		FROM recharge_packages
		WHERE id = $1`, id)
	pkg, err := scanPackage(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("package not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find package", err)
	}
	return pkg, nil
}

func (r *PackageRepository) ListActive(ctx context.Context) ([]*wallet.CreditPackage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+packageColumns+`
		FROM recharge_packages
		WHERE active
		ORDER BY price_amount ASC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list packages", err)
	}
	defer rows.Close()

	var packages []*wallet.CreditPackage
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan package", err)
		}
		packages = append(packages, pkg)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate packages", err)
	}
	return packages, nil
}

func scanPackage(row pgx.Row) (*wallet.CreditPackage, error) {
	var (
		id           uuid.UUID
		name         string
		credits      int64
		bonusCredits int64
		priceAmount  int64
		currency     string
		active       bool
		createdAt    time.Time
	)
	if err := row.Scan(&id, &name, &credits, &bonusCredits, &priceAmount, &currency, &active, &createdAt); err != nil {
		return nil, err
	}
	return wallet.ReconstructPackage(id, name, credits, bonusCredits, priceAmount, currency, active, createdAt), nil
}
