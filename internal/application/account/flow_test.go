package account

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/plugin-accounts/internal/domain"
	"github.com/plugin-accounts/internal/infrastructure/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLedger is an in-memory account store for end-to-end flow tests.
type fakeLedger struct {
	byID map[string]*domain.Account
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{byID: map[string]*domain.Account{}}
}

func (f *fakeLedger) Get(_ context.Context, accountID string) (*domain.Account, error) {
	if a, ok := f.byID[accountID]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeLedger) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range f.byID {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeLedger) Put(_ context.Context, a *domain.Account) error {
	cp := *a
	f.byID[a.AccountID] = &cp
	return nil
}

func (f *fakeLedger) Update(_ context.Context, accountID string, updates map[string]interface{}) error {
	a, ok := f.byID[accountID]
	if !ok {
		return domain.ErrNotFound
	}
	if lvl, ok := updates["subscription_level"].(string); ok {
		a.SubscriptionLevel = lvl
	}
	return nil
}

// fakeSigner issues a recognizable token embedding the subject.
type fakeSigner struct{}

func (fakeSigner) Sign(subject string) (string, error) {
	return "token-for:" + subject, nil
}

// silentNotifier swallows everything, like a healthy console channel.
type silentNotifier struct{ delivered []string }

func (n *silentNotifier) Deliver(_ context.Context, to, _, body string) error {
	n.delivered = append(n.delivered, fmt.Sprintf("%s|%s", to, body))
	return nil
}

func newFlowService(ledger *fakeLedger, codes *memstore.CodeStore, n *silentNotifier) Service {
	return NewService(ServiceDeps{
		AccountRepo:     ledger,
		CodeStore:       codes,
		Notifier:        n,
		Signer:          fakeSigner{},
		CodeTTL:         10 * time.Minute,
		DeliveryTimeout: time.Second,
	})
}

func TestFlow_RequestRegisterLoginProfile(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	codes := memstore.NewCodeStore()
	notifier := &silentNotifier{}
	svc := newFlowService(ledger, codes, notifier)

	// Request a code and pull it out of the store, as the email would carry it.
	require.NoError(t, svc.RequestCode(ctx, "a@x.com"))
	entry, err := codes.Get(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, notifier.delivered, 1)
	assert.Contains(t, notifier.delivered[0], entry.Code)

	// Register with it.
	created, err := svc.Register(ctx, domain.RegisterRequest{
		Email:            "a@x.com",
		Password:         "p1",
		VerificationCode: entry.Code,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionFree, created.SubscriptionLevel)

	// Log in and confirm the token binds the account email.
	token, err := svc.Login(ctx, "a@x.com", "p1")
	require.NoError(t, err)
	assert.Equal(t, "token-for:a@x.com", token)

	// Profile lookup by the token subject.
	got, err := svc.Profile(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, domain.SubscriptionFree, got.SubscriptionLevel)

	// Upgrade and re-read.
	up, err := svc.SetSubscriptionLevel(ctx, "a@x.com", domain.SubscriptionPro)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionPro, up.SubscriptionLevel)
}

func TestFlow_SecondRegistrationFailsEvenWithFreshCode(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	codes := memstore.NewCodeStore()
	svc := newFlowService(ledger, codes, &silentNotifier{})

	seedCode(t, codes, "a@x.com", "111111", time.Now().Add(10*time.Minute))
	_, err := svc.Register(ctx, domain.RegisterRequest{
		Email: "a@x.com", Password: "p1", VerificationCode: "111111",
	})
	require.NoError(t, err)

	// A fresh, valid code does not help once the account exists.
	seedCode(t, codes, "a@x.com", "222222", time.Now().Add(10*time.Minute))
	_, err = svc.Register(ctx, domain.RegisterRequest{
		Email: "a@x.com", Password: "p2", VerificationCode: "222222",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestFlow_NewCodeInvalidatesPreviousOne(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	codes := memstore.NewCodeStore()
	svc := newFlowService(ledger, codes, &silentNotifier{})

	seedCode(t, codes, "a@x.com", "111111", time.Now().Add(10*time.Minute))
	seedCode(t, codes, "a@x.com", "222222", time.Now().Add(10*time.Minute))

	_, err := svc.Register(ctx, domain.RegisterRequest{
		Email: "a@x.com", Password: "p1", VerificationCode: "111111",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))

	// The replacement code still registers fine.
	_, err = svc.Register(ctx, domain.RegisterRequest{
		Email: "a@x.com", Password: "p1", VerificationCode: "222222",
	})
	assert.NoError(t, err)
}
