package domain

import "time"

// Subscription levels an account may hold. The upgrade endpoint accepts
// nothing outside this set.
const (
	SubscriptionFree = "free"
	SubscriptionPro  = "pro"
)

// ValidSubscriptionLevel reports whether level belongs to the closed set of
// known subscription levels.
func ValidSubscriptionLevel(level string) bool {
	return level == SubscriptionFree || level == SubscriptionPro
}

// Account is a registered user of the extension backend. Email is the natural
// identity: it is unique, immutable after registration, and the subject bound
// into issued bearer tokens.
type Account struct {
	AccountID         string    `json:"id" dynamodbav:"account_id"`
	Email             string    `json:"email" dynamodbav:"email"`
	PasswordHash      string    `json:"-" dynamodbav:"password_hash"`
	IsActive          bool      `json:"is_active" dynamodbav:"is_active"`
	SubscriptionLevel string    `json:"subscription_level" dynamodbav:"subscription_level"`
	CreatedAt         time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt         time.Time `json:"updated" dynamodbav:"updated_at"`
}

type SendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type RegisterRequest struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,max=72"`
	VerificationCode string `json:"verification_code" validate:"required"`
}

type UpgradeRequest struct {
	Level string `json:"level" validate:"required"`
}
