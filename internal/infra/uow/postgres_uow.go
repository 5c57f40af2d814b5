package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"tyreplus-backend/internal/infra/db"
	"tyreplus-backend/internal/infra/repository"
	"tyreplus-backend/internal/pkg/errs"
	"tyreplus-backend/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Read-only transaction for consistent multi-table snapshots.
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, q db.DBTX) error) error {
	return u.runReadOnlyTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, q db.DBTX) error) error {
	return fn(ctx, u.pool)
}

// Avoids defer accumulation in retry loops to prevent connection leaks.
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, q db.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Mask the high bit so the conversion stays positive.
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	identityRepo      shared.IdentityRepository
	dealerProfileRepo shared.DealerProfileRepository
	otpRepo           shared.OtpChallengeRepository
	refreshRepo       shared.RefreshTokenRepository
	leadRepo          shared.LeadRepository
	offerRepo         shared.OfferRepository
	walletRepo        shared.WalletRepository
	orderRepo         shared.RechargeOrderRepository
	packageRepo       shared.PackageRepository
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Identities() shared.IdentityRepository {
	if t.identityRepo == nil {
		t.identityRepo = repository.NewIdentityRepository(t.dbtx)
	}
	return t.identityRepo
}

func (t *pgTx) DealerProfiles() shared.DealerProfileRepository {
	if t.dealerProfileRepo == nil {
		t.dealerProfileRepo = repository.NewDealerProfileRepository(t.dbtx)
	}
	return t.dealerProfileRepo
}

func (t *pgTx) OtpChallenges() shared.OtpChallengeRepository {
	if t.otpRepo == nil {
		t.otpRepo = repository.NewOtpChallengeRepository(t.dbtx)
	}
	return t.otpRepo
}

func (t *pgTx) RefreshTokens() shared.RefreshTokenRepository {
	if t.refreshRepo == nil {
		t.refreshRepo = repository.NewRefreshTokenRepository(t.dbtx)
	}
	return t.refreshRepo
}

func (t *pgTx) Leads() shared.LeadRepository {
	if t.leadRepo == nil {
		t.leadRepo = repository.NewLeadRepository(t.dbtx)
	}
	return t.leadRepo
}

func (t *pgTx) Offers() shared.OfferRepository {
	if t.offerRepo == nil {
		t.offerRepo = repository.NewOfferRepository(t.dbtx)
	}
	return t.offerRepo
}

func (t *pgTx) Wallets() shared.WalletRepository {
	if t.walletRepo == nil {
		t.walletRepo = repository.NewWalletRepository(t.dbtx)
	}
	return t.walletRepo
}

func (t *pgTx) RechargeOrders() shared.RechargeOrderRepository {
	if t.orderRepo == nil {
		t.orderRepo = repository.NewRechargeOrderRepository(t.dbtx)
	}
	return t.orderRepo
}

func (t *pgTx) Packages() shared.PackageRepository {
	if t.packageRepo == nil {
		t.packageRepo = repository.NewPackageRepository(t.dbtx)
	}
	return t.packageRepo
}
