package domain

// VerificationEntry is a pending email verification code.
// Keyed by email; at most one live entry per address — storing a new code
// overwrites (and thereby invalidates) any previous one.
// ExpiresAt is a Unix timestamp; expired entries are purged lazily on lookup.
type VerificationEntry struct {
	Email     string `json:"email"`
	Code      string `json:"code"`
	ExpiresAt int64  `json:"expires_at"` // Unix seconds
}
