// Package auth implements self-certifying caller identity: a caller is the
// hash of an Ed25519 public key, and proves it by signing short-lived tokens
// with the matching private key.
package auth

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"fmt"
	"strings"
)

var principalEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// GenerateKeypair creates a new Ed25519 identity.
func GenerateKeypair() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("generating Ed25519 keypair: %w", err)
	}
	return pub, priv, nil
}

// PrincipalOf derives the textual principal of a public key: lowercase base32
// of its SHA-224 digest in dash-separated groups of five.
func PrincipalOf(pub ed25519.PublicKey) string {
	sum := sha256.Sum224(pub)
	raw := strings.ToLower(principalEncoding.EncodeToString(sum[:]))

	var b strings.Builder
	for i := 0; i < len(raw); i += 5 {
		if i > 0 {
			b.WriteByte('-')
		}
		b.WriteString(raw[i:min(i+5, len(raw))])
	}
	return b.String()
}

type principalKey struct{}

// WithPrincipal stores the verified caller principal in ctx.
func WithPrincipal(ctx context.Context, principal string) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// PrincipalFromContext returns the caller principal stored by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (string, bool) {
	p, ok := ctx.Value(principalKey{}).(string)
	return p, ok && p != ""
}
