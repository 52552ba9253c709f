package auth

import "time"

// Identity is the authenticated principal carried by a token.
type Identity struct {
	UserID string
	Admin  bool
}

type Strategy interface {
	IssueToken(identity Identity) (string, error)
	ParseToken(token string) (Identity, error)
	Name() string
}

type Options struct {
	TTL time.Duration
	Now func() time.Time
}
