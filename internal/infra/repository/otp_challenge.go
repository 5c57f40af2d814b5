package repository

import (
	"context"
	"errors"
	"time"

	"tyreplus-backend/internal/domain/identity"
	"tyreplus-backend/internal/domain/otp"
	"tyreplus-backend/internal/infra"
	"tyreplus-backend/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OtpChallengeRepository struct {
	db db.DBTX
}

func NewOtpChallengeRepository(dbtx db.DBTX) *OtpChallengeRepository {
	return &OtpChallengeRepository{db: dbtx}
}

func (r *OtpChallengeRepository) Create(ctx context.Context, challenge *otp.Challenge) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO otp_challenges (id, mobile, code_hash, attempts_remaining, consumed, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		challenge.ID(), challenge.Mobile().String(), challenge.CodeHash(),
		challenge.AttemptsRemaining(), challenge.Consumed(),
		challenge.CreatedAt(), challenge.ExpiresAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create otp challenge", err)
	}
	return nil
}

// FindActiveByMobile returns the newest unconsumed challenge regardless
// of expiry; the caller decides how stale challenges are reported.
func (r *OtpChallengeRepository) FindActiveByMobile(ctx context.Context, mobile identity.Mobile) (*otp.Challenge, error) {
	var (
		id                uuid.UUID
		codeHash          string
		attemptsRemaining int
		consumed          bool
		createdAt         time.Time
		expiresAt         time.Time
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, code_hash, attempts_remaining, consumed, created_at, expires_at
		FROM otp_challenges
		WHERE mobile = $1 AND NOT consumed
		ORDER BY created_at DESC
		LIMIT 1`, mobile.String(),
	).Scan(&id, &codeHash, &attemptsRemaining, &consumed, &createdAt, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("no active otp challenge", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find otp challenge", err)
	}
	return otp.Reconstruct(id, mobile, codeHash, attemptsRemaining, consumed, createdAt, expiresAt), nil
}

func (r *OtpChallengeRepository) SupersedeActive(ctx context.Context, mobile identity.Mobile) error {
	_, err := r.db.Exec(ctx, `
		UPDATE otp_challenges SET consumed = TRUE
		WHERE mobile = $1 AND NOT consumed`, mobile.String())
	if err != nil {
		return infra.WrapRepoErr("failed to supersede otp challenges", err)
	}
	return nil
}

// DecrementAttempts burns one attempt in a single guarded UPDATE so two
// concurrent wrong guesses cannot share an attempt.
func (r *OtpChallengeRepository) DecrementAttempts(ctx context.Context, id uuid.UUID) (int, error) {
	var remaining int
	err := r.db.QueryRow(ctx, `
		UPDATE otp_challenges
		SET attempts_remaining = attempts_remaining - 1
		WHERE id = $1 AND attempts_remaining > 0 AND NOT consumed
		RETURNING attempts_remaining`, id,
	).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, infra.WrapRepoErr("otp challenge not decrementable", err, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to decrement otp attempts", err)
	}
	return remaining, nil
}

// Consume is single-shot: the guard predicates make a second concurrent
// verify lose the race and report false.
func (r *OtpChallengeRepository) Consume(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE otp_challenges SET consumed = TRUE
		WHERE id = $1 AND NOT consumed AND attempts_remaining > 0 AND expires_at > now()`, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to consume otp challenge", err)
	}
	return tag.RowsAffected() == 1, nil
}
