package account

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/plugin-accounts/internal/domain"
	"github.com/plugin-accounts/internal/infrastructure/notify"
	"github.com/plugin-accounts/internal/pkg/id"
	"github.com/plugin-accounts/internal/pkg/otp"
	"golang.org/x/crypto/bcrypt"
)

// Service implements the account flows: verification-gated registration,
// password login issuing a bearer token, profile lookup, and the mock
// subscription upgrade.
type Service interface {
	RequestCode(ctx context.Context, email string) error
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (bearer string, err error)
	Profile(ctx context.Context, email string) (*domain.Account, error)
	SetSubscriptionLevel(ctx context.Context, email, level string) (*domain.Account, error)
}

type accountStore interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Put(ctx context.Context, a *domain.Account) error
	Update(ctx context.Context, accountID string, updates map[string]interface{}) error
}

type codeStore interface {
	Put(ctx context.Context, v domain.VerificationEntry) error
	Get(ctx context.Context, email string) (*domain.VerificationEntry, error)
	Delete(ctx context.Context, email string) error
}

type tokenSigner interface {
	Sign(subject string) (string, error)
}

type service struct {
	accounts        accountStore
	codes           codeStore
	notifier        notify.Notifier
	signer          tokenSigner
	codeTTL         time.Duration
	deliveryTimeout time.Duration
}

type ServiceDeps struct {
	AccountRepo     accountStore
	CodeStore       codeStore
	Notifier        notify.Notifier
	Signer          tokenSigner
	CodeTTL         time.Duration
	DeliveryTimeout time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		accounts:        deps.AccountRepo,
		codes:           deps.CodeStore,
		notifier:        deps.Notifier,
		signer:          deps.Signer,
		codeTTL:         deps.CodeTTL,
		deliveryTimeout: deps.DeliveryTimeout,
	}
}

// RequestCode generates, stores and delivers a verification code. Delivery
// failure is swallowed: the code is stored and usable before any channel is
// tried, and the chain's console fallback keeps it reachable to operators.
func (s *service) RequestCode(ctx context.Context, email string) error {
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}

	code, err := otp.GenerateCode(otp.DefaultLength)
	if err != nil {
		return err
	}
	if err := s.codes.Put(ctx, domain.VerificationEntry{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(s.codeTTL).Unix(),
	}); err != nil {
		return err
	}

	subject := "Your registration verification code"
	body := fmt.Sprintf(
		"Hello,\n\nThanks for signing up! Your verification code is: %s\n\nIt expires in %d minutes. If you did not request this code, ignore this message.",
		code, int(s.codeTTL.Minutes()),
	)
	dctx, cancel := context.WithTimeout(ctx, s.deliveryTimeout)
	defer cancel()
	if err := s.notifier.Deliver(dctx, email, subject, body); err != nil {
		slog.Error("verification code delivery failed on every channel", "email", email, "err", err)
	}
	return nil
}

// consumeCode checks the stored code for email. A match or an expired entry
// removes the entry; a wrong guess leaves it intact so a mistyped code does
// not force a fresh request.
func (s *service) consumeCode(ctx context.Context, email, code string) bool {
	v, err := s.codes.Get(ctx, email)
	if err != nil {
		return false
	}
	if time.Now().Unix() > v.ExpiresAt {
		if err := s.codes.Delete(ctx, email); err != nil {
			slog.Warn("failed to purge expired verification entry", "email", email, "err", err)
		}
		return false
	}
	if v.Code != code {
		return false
	}
	if err := s.codes.Delete(ctx, email); err != nil {
		slog.Warn("failed to delete consumed verification entry", "email", email, "err", err)
	}
	return true
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Account, error) {
	if !s.consumeCode(ctx, req.Email, req.VerificationCode) {
		return nil, fmt.Errorf("verification code incorrect or expired: %w", domain.ErrBadRequest)
	}
	if _, err := s.accounts.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	a := &domain.Account{
		AccountID:         id.New(),
		Email:             req.Email,
		PasswordHash:      string(hash),
		IsActive:          true,
		SubscriptionLevel: domain.SubscriptionFree,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.accounts.Put(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Login validates credentials and issues a bearer token bound to the email.
// All failure modes collapse into one error so callers cannot probe which
// addresses have accounts. IsActive is intentionally not gated here.
func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	a, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("incorrect email or password: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("incorrect email or password: %w", domain.ErrUnauthorized)
	}
	return s.signer.Sign(a.Email)
}

func (s *service) Profile(ctx context.Context, email string) (*domain.Account, error) {
	return s.accounts.GetByEmail(ctx, email)
}

func (s *service) SetSubscriptionLevel(ctx context.Context, email, level string) (*domain.Account, error) {
	if !domain.ValidSubscriptionLevel(level) {
		return nil, fmt.Errorf("invalid subscription level %q: %w", level, domain.ErrBadRequest)
	}
	a, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := s.accounts.Update(ctx, a.AccountID, map[string]interface{}{"subscription_level": level}); err != nil {
		return nil, err
	}
	return s.accounts.Get(ctx, a.AccountID)
}
