package auth

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/ticketledger/internal/clock"
	"github.com/dmitrijs2005/ticketledger/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard claims plus the signer's public key. Subject is
// the principal derived from PublicKey.
type Claims struct {
	jwt.RegisteredClaims
	PublicKey string `json:"pk"`
}

// MintToken signs a token proving possession of priv, valid for ttl from now.
func MintToken(priv ed25519.PrivateKey, audience string, ttl time.Duration, now time.Time) (string, error) {
	pub, ok := priv.Public().(ed25519.PublicKey)
	if !ok {
		return "", errors.New("unexpected public key type")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   PrincipalOf(pub),
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		PublicKey: base64.RawURLEncoding.EncodeToString(pub),
	})

	return token.SignedString(priv)
}

// Verifier checks tokens produced by MintToken.
type Verifier struct {
	audience    string
	maxLifetime time.Duration
	clock       clock.Clock
}

func NewVerifier(audience string, maxLifetime time.Duration, clk clock.Clock) *Verifier {
	return &Verifier{audience: audience, maxLifetime: maxLifetime, clock: clk}
}

// Verify validates the signature, audience, expiry and lifetime of a token and
// returns the principal it proves. Expired tokens yield common.ErrTokenExpired,
// every other failure wraps common.ErrInvalidToken.
func (v *Verifier) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(v.clock.Now),
	)

	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return decodePublicKey(claims.PublicKey)
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	if claims.IssuedAt == nil {
		return "", fmt.Errorf("%w: missing iat", common.ErrInvalidToken)
	}
	if v.maxLifetime > 0 && claims.ExpiresAt.Sub(claims.IssuedAt.Time) > v.maxLifetime {
		return "", fmt.Errorf("%w: lifetime exceeds %s", common.ErrInvalidToken, v.maxLifetime)
	}

	pub, _ := decodePublicKey(claims.PublicKey)
	principal := PrincipalOf(pub)
	if claims.Subject != principal {
		return "", fmt.Errorf("%w: subject does not match key", common.ErrInvalidToken)
	}

	return principal, nil
}

func decodePublicKey(s string) (ed25519.PublicKey, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode pk: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("pk has %d bytes, want %d", len(raw), ed25519.PublicKeySize)
	}
	return ed25519.PublicKey(raw), nil
}
