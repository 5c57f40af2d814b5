package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tyreplus-backend/internal/domain/identity"
	"tyreplus-backend/internal/domain/otp"
	"tyreplus-backend/internal/domain/token"
	"tyreplus-backend/internal/domain/wallet"
	"tyreplus-backend/internal/pkg/clock"
	"tyreplus-backend/internal/pkg/config"
	"tyreplus-backend/internal/pkg/errs"
	"tyreplus-backend/internal/pkg/jwt"
	"tyreplus-backend/internal/pkg/password"
	"tyreplus-backend/internal/platform/sms"
	"tyreplus-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidMobile          = errs.New("invalid mobile number")
	ErrResendCooldown         = errs.New("otp resend cooldown active")
	ErrOtpNotFound            = errs.New("no active otp challenge")
	ErrOtpExpired             = errs.New("otp expired")
	ErrOtpInvalid             = errs.New("invalid otp")
	ErrOtpAttemptsExhausted   = errs.New("otp attempts exhausted")
	ErrOtpAlreadyConsumed     = errs.New("otp already used")
	ErrInvalidCredentials     = errs.New("invalid credentials")
	ErrIdentityNotFound       = errs.New("identity not found")
	ErrInvalidRefreshToken    = errs.New("invalid refresh token")
	ErrRefreshTokenExpired    = errs.New("refresh token expired")
	ErrEmailAlreadyRegistered = errs.New("email already registered")
	ErrAlreadyRegistered      = errs.New("mobile already registered")
	ErrTokenGeneration        = errs.New("token generation failed")
)

type SendOtpResult struct {
	// EchoCode carries the plaintext code in dev mode only.
	EchoCode *string
}

type IdentitySnapshot struct {
	ID   uuid.UUID
	Name string
	Role string
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	Identity     IdentitySnapshot
}

type RegisterDealerInput struct {
	Mobile       string
	Code         string
	BusinessName string
	OwnerName    string
	Email        string
	Address      string
	Password     string
}

type AuthCommands interface {
	SendOtp(ctx context.Context, mobile string, role identity.Role) (*SendOtpResult, error)
	VerifyOtp(ctx context.Context, mobile, code string, role identity.Role) (*LoginResult, error)
	LoginWithPassword(ctx context.Context, identifier, plainPassword string) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
	SetPassword(ctx context.Context, identityID uuid.UUID, plainPassword string) error
	CompleteDealerRegistration(ctx context.Context, input RegisterDealerInput) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
	sender     sms.Sender
	otpCfg     config.OtpConfig
	refreshTTL time.Duration
	clk        clock.Clock
}

func NewAuthCommands(
	uow shared.UnitOfWork,
	jwtService *jwt.Service,
	sender sms.Sender,
	otpCfg config.OtpConfig,
	jwtCfg config.JWTConfig,
	clk clock.Clock,
) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		jwtService: jwtService,
		sender:     sender,
		otpCfg:     otpCfg,
		refreshTTL: jwtCfg.RefreshDuration,
		clk:        clk,
	}
}

func (a *authCommandsImpl) SendOtp(ctx context.Context, rawMobile string, role identity.Role) (*SendOtpResult, error) {
	mobile, err := identity.NewMobile(rawMobile)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidMobile)
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate otp code")
	}

	now := a.clk.Now()
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		active, err := tx.OtpChallenges().FindActiveByMobile(ctx, mobile)
		if err == nil && active.WithinCooldown(now, a.otpCfg.ResendCooldown) {
			return ErrResendCooldown
		}

		// Superseding keeps exactly one live challenge per mobile.
		if err := tx.OtpChallenges().SupersedeActive(ctx, mobile); err != nil {
			return err
		}

		challenge := otp.NewChallenge(mobile, code, a.otpCfg.AttemptBudget, a.otpCfg.TTL, now)
		return tx.OtpChallenges().Create(ctx, challenge)
	})
	if err != nil {
		return nil, err
	}

	if a.otpCfg.DevMode {
		return &SendOtpResult{EchoCode: &code}, nil
	}

	if err := a.sender.SendOtp(ctx, mobile.String(), code); err != nil {
		// The challenge stays valid; the client can retry after cooldown.
		slog.Error("otp sms dispatch failed", "error", err.Error())
		return nil, errs.Wrap(err, "failed to dispatch otp")
	}
	return &SendOtpResult{}, nil
}

func (a *authCommandsImpl) VerifyOtp(ctx context.Context, rawMobile, code string, role identity.Role) (*LoginResult, error) {
	mobile, err := identity.NewMobile(rawMobile)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidMobile)
	}

	now := a.clk.Now()
	var result *LoginResult
	var verifyErr error
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		challenge, err := tx.OtpChallenges().FindActiveByMobile(ctx, mobile)
		if err != nil {
			return errs.Mark(err, ErrOtpNotFound)
		}

		if err := challenge.CheckVerifiable(now); err != nil {
			return errs.Mark(err, mapOtpDomainErr(err))
		}

		if !challenge.Matches(code) {
			if _, err := tx.OtpChallenges().DecrementAttempts(ctx, challenge.ID()); err != nil {
				return err
			}
			// Commit the transaction so the burned attempt sticks; the
			// verify error travels out-of-band. Exhaustion surfaces on the
			// next attempt through CheckVerifiable.
			verifyErr = ErrOtpInvalid
			return nil
		}

		consumed, err := tx.OtpChallenges().Consume(ctx, challenge.ID())
		if err != nil {
			return err
		}
		if !consumed {
			return ErrOtpAlreadyConsumed
		}

		ident, err := a.findOrCreateGuest(ctx, tx, mobile, role, now)
		if err != nil {
			return err
		}

		result, err = a.issueTokens(ctx, tx, ident, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	if verifyErr != nil {
		return nil, verifyErr
	}
	return result, nil
}

func (a *authCommandsImpl) LoginWithPassword(ctx context.Context, identifier, plainPassword string) (*LoginResult, error) {
	now := a.clk.Now()
	var result *LoginResult
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ident, err := a.findByIdentifier(ctx, tx, identifier)
		if err != nil {
			// Same error for unknown identifier and wrong password; no
			// account enumeration.
			return ErrInvalidCredentials
		}

		hash := ident.PasswordHash()
		if hash == nil {
			return ErrInvalidCredentials
		}
		if err := password.Compare(*hash, plainPassword); err != nil {
			return ErrInvalidCredentials
		}

		result, err = a.issueTokens(ctx, tx, ident, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (a *authCommandsImpl) Refresh(ctx context.Context, refreshToken string) (string, error) {
	now := a.clk.Now()
	var accessToken string
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		stored, err := tx.RefreshTokens().FindByHash(ctx, token.Hash(refreshToken))
		if err != nil {
			return errs.Mark(err, ErrInvalidRefreshToken)
		}

		if err := stored.CheckUsable(now); err != nil {
			if errors.Is(err, token.ErrExpired) {
				return errs.Mark(err, ErrRefreshTokenExpired)
			}
			return errs.Mark(err, ErrInvalidRefreshToken)
		}

		ident, err := tx.Identities().FindByID(ctx, stored.IdentityID())
		if err != nil {
			return errs.Mark(err, ErrIdentityNotFound)
		}

		accessToken, err = a.jwtService.GenerateAccessToken(ident.ID(), ident.Role())
		if err != nil {
			return errs.Mark(err, ErrTokenGeneration)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return accessToken, nil
}

// Logout never fails on unknown tokens; revocation is idempotent.
func (a *authCommandsImpl) Logout(ctx context.Context, refreshToken string) error {
	return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.RefreshTokens().RevokeByHash(ctx, token.Hash(refreshToken))
	})
}

func (a *authCommandsImpl) SetPassword(ctx context.Context, identityID uuid.UUID, plainPassword string) error {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return err
	}
	return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Identities().UpdatePasswordHash(ctx, identityID, hash); err != nil {
			return errs.Mark(err, ErrIdentityNotFound)
		}
		return nil
	})
}

func (a *authCommandsImpl) CompleteDealerRegistration(ctx context.Context, input RegisterDealerInput) (*LoginResult, error) {
	mobile, err := identity.NewMobile(input.Mobile)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidMobile)
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := a.clk.Now()
	var result *LoginResult
	var verifyErr error
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		challenge, err := tx.OtpChallenges().FindActiveByMobile(ctx, mobile)
		if err != nil {
			return errs.Mark(err, ErrOtpNotFound)
		}
		if err := challenge.CheckVerifiable(now); err != nil {
			return errs.Mark(err, mapOtpDomainErr(err))
		}
		if !challenge.Matches(input.Code) {
			if _, err := tx.OtpChallenges().DecrementAttempts(ctx, challenge.ID()); err != nil {
				return err
			}
			// Same out-of-band shape as VerifyOtp: commit the decrement.
			verifyErr = ErrOtpInvalid
			return nil
		}
		consumed, err := tx.OtpChallenges().Consume(ctx, challenge.ID())
		if err != nil {
			return err
		}
		if !consumed {
			return ErrOtpAlreadyConsumed
		}

		if existing, err := tx.Identities().FindByEmail(ctx, input.Email); err == nil && existing != nil {
			return ErrEmailAlreadyRegistered
		}

		ident, err := tx.Identities().FindByMobileAndRole(ctx, mobile, identity.RoleDealer)
		switch {
		case err == nil:
			if ident.PasswordHash() != nil {
				return ErrAlreadyRegistered
			}
			// Guest dealer upgrading to a full account.
			email := input.Email
			if err := tx.Identities().UpdateContact(ctx, ident.ID(), input.OwnerName, &email); err != nil {
				return err
			}
			if err := tx.Identities().UpdatePasswordHash(ctx, ident.ID(), hash); err != nil {
				return err
			}
			ident = identity.Reconstruct(ident.ID(), mobile, identity.RoleDealer, input.OwnerName, &email, &hash, ident.VerifiedAt(), ident.CreatedAt())
		default:
			ident, err = identity.NewDealer(mobile, input.OwnerName, input.Email, hash, now)
			if err != nil {
				return err
			}
			if err := tx.Identities().Create(ctx, ident); err != nil {
				return err
			}
			if err := tx.Wallets().Create(ctx, wallet.New(ident.ID(), now)); err != nil {
				return err
			}
		}

		profile, err := identity.NewDealerProfile(ident.ID(), input.BusinessName, input.OwnerName, input.Address, now)
		if err != nil {
			return err
		}
		if err := tx.DealerProfiles().Upsert(ctx, profile); err != nil {
			return err
		}

		result, err = a.issueTokens(ctx, tx, ident, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	if verifyErr != nil {
		return nil, verifyErr
	}
	return result, nil
}

func (a *authCommandsImpl) findOrCreateGuest(ctx context.Context, tx shared.Tx, mobile identity.Mobile, role identity.Role, now time.Time) (*identity.Identity, error) {
	ident, err := tx.Identities().FindByMobileAndRole(ctx, mobile, role)
	if err == nil {
		return ident, nil
	}

	ident = identity.NewGuest(mobile, role, now)
	if err := tx.Identities().Create(ctx, ident); err != nil {
		return nil, err
	}
	if role == identity.RoleDealer {
		if err := tx.Wallets().Create(ctx, wallet.New(ident.ID(), now)); err != nil {
			return nil, err
		}
	}
	return ident, nil
}

func (a *authCommandsImpl) findByIdentifier(ctx context.Context, tx shared.Tx, identifier string) (*identity.Identity, error) {
	if mobile, err := identity.NewMobile(identifier); err == nil {
		return tx.Identities().FindByMobileAndRole(ctx, mobile, identity.RoleDealer)
	}
	return tx.Identities().FindByEmail(ctx, identifier)
}

func (a *authCommandsImpl) issueTokens(ctx context.Context, tx shared.Tx, ident *identity.Identity, now time.Time) (*LoginResult, error) {
	accessToken, err := a.jwtService.GenerateAccessToken(ident.ID(), ident.Role())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	plaintext, err := token.GenerateOpaque()
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	refresh := token.NewRefresh(ident.ID(), plaintext, a.refreshTTL, now)
	if err := tx.RefreshTokens().Create(ctx, refresh); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: plaintext,
		Identity: IdentitySnapshot{
			ID:   ident.ID(),
			Name: ident.Name(),
			Role: ident.Role().String(),
		},
	}, nil
}

func mapOtpDomainErr(err error) error {
	switch {
	case errors.Is(err, otp.ErrAlreadyConsumed):
		return ErrOtpAlreadyConsumed
	case errors.Is(err, otp.ErrAttemptsExhausted):
		return ErrOtpAttemptsExhausted
	case errors.Is(err, otp.ErrExpired):
		return ErrOtpExpired
	default:
		return ErrOtpInvalid
	}
}
