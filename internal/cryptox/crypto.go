// Package cryptox seals small secrets (the CLI's private key) under a
// passphrase using argon2id key derivation and AES-256-GCM.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ticketledger/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	SaltSize = 16
	KeySize  = 32
)

// ErrWrongPassphrase is returned by Open when authentication of the
// ciphertext fails, which in practice means the passphrase is wrong.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted data")

// Sealed is the on-disk form of a passphrase-protected secret.
type Sealed struct {
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// DeriveKey stretches a passphrase into a 32-byte AES key with argon2id.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, KeySize)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext under a key derived from passphrase and a fresh salt.
func Seal(plaintext, passphrase []byte) (*Sealed, error) {
	salt := common.GenerateRandByteArray(SaltSize)

	key := DeriveKey(passphrase, salt)
	defer common.WipeByteArray(key)

	aead, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	nonce := common.GenerateRandByteArray(aead.NonceSize())
	return &Sealed{
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, plaintext, salt),
	}, nil
}

// Open reverses Seal.
func Open(s *Sealed, passphrase []byte) ([]byte, error) {
	if s == nil || len(s.Salt) == 0 || len(s.Nonce) == 0 {
		return nil, errors.New("malformed sealed data")
	}

	key := DeriveKey(passphrase, s.Salt)
	defer common.WipeByteArray(key)

	aead, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	if len(s.Nonce) != aead.NonceSize() {
		return nil, errors.New("malformed sealed data")
	}

	plaintext, err := aead.Open(nil, s.Nonce, s.Ciphertext, s.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return plaintext, nil
}
