package token

import (
	"github.com/budgetly/expense-tracker/config"
)

// Issuer produces both token classes for a user identity. Class separation
// relies entirely on the two distinct secrets; callers must not distinguish
// classes by claim shape.
type Issuer struct {
	codec *Codec
	cfg   *config.AuthConfig
}

func NewIssuer(codec *Codec, cfg *config.AuthConfig) *Issuer {
	return &Issuer{codec: codec, cfg: cfg}
}

// IssueAccess mints a short-lived access token for subject.
func (i *Issuer) IssueAccess(subject string) (string, error) {
	return i.codec.Encode(subject, i.cfg.AccessTTL, i.cfg.AccessSecret)
}

// IssueRefresh mints a long-lived refresh token for subject.
func (i *Issuer) IssueRefresh(subject string) (string, error) {
	return i.codec.Encode(subject, i.cfg.RefreshTTL, i.cfg.RefreshSecret)
}

// DecodeAccess verifies an access-class token.
func (i *Issuer) DecodeAccess(tokenString string) (*Claims, error) {
	return i.codec.Decode(tokenString, i.cfg.AccessSecret)
}

// DecodeRefresh verifies a refresh-class token. Logout and refresh both go
// through here so the refresh secret is used consistently everywhere.
func (i *Issuer) DecodeRefresh(tokenString string) (*Claims, error) {
	return i.codec.Decode(tokenString, i.cfg.RefreshSecret)
}
