// Package identity keeps the CLI caller's Ed25519 keypair on disk, sealed
// under a passphrase.
package identity

import (
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/ticketledger/internal/auth"
	"github.com/dmitrijs2005/ticketledger/internal/common"
	"github.com/dmitrijs2005/ticketledger/internal/cryptox"
	"github.com/dmitrijs2005/ticketledger/internal/filex"
)

// FileName is the name of the key file inside the identity directory.
const FileName = "identity.json"

var (
	ErrNotFound      = errors.New("identity not found")
	ErrAlreadyExists = errors.New("identity already exists")
)

// Identity is an unsealed keypair together with the principal derived from it.
type Identity struct {
	Principal string
	Public    ed25519.PublicKey
	Private   ed25519.PrivateKey
}

// keyFile is the on-disk layout. The public key is kept in clear so the
// principal can be shown without the passphrase.
type keyFile struct {
	Principal string          `json:"principal"`
	PublicKey []byte          `json:"public_key"`
	Seed      *cryptox.Sealed `json:"seed"`
}

// Store reads and writes the key file under dir.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Path() string {
	return filepath.Join(s.dir, FileName)
}

func (s *Store) Exists() bool {
	return filex.Exists(s.Path())
}

// Create generates a fresh keypair and seals its seed with passphrase.
// An existing key file is never overwritten.
func (s *Store) Create(passphrase []byte) (*Identity, error) {
	if s.Exists() {
		return nil, ErrAlreadyExists
	}

	pub, priv, err := auth.GenerateKeypair()
	if err != nil {
		return nil, err
	}

	seed := priv.Seed()
	defer common.WipeByteArray(seed)

	sealed, err := cryptox.Seal(seed, passphrase)
	if err != nil {
		return nil, fmt.Errorf("seal key: %w", err)
	}

	kf := keyFile{Principal: auth.PrincipalOf(pub), PublicKey: pub, Seed: sealed}
	data, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return nil, err
	}

	if _, err := filex.EnsureDir(s.dir); err != nil {
		return nil, err
	}
	if err := filex.WriteFileAtomic(s.Path(), data, 0o600); err != nil {
		return nil, err
	}

	return &Identity{Principal: kf.Principal, Public: pub, Private: priv}, nil
}

// Load unseals the stored keypair. A wrong passphrase yields
// cryptox.ErrWrongPassphrase.
func (s *Store) Load(passphrase []byte) (*Identity, error) {
	kf, err := s.read()
	if err != nil {
		return nil, err
	}

	seed, err := cryptox.Open(kf.Seed, passphrase)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(seed)

	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("corrupted key file %s", s.Path())
	}

	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	if !pub.Equal(ed25519.PublicKey(kf.PublicKey)) {
		return nil, fmt.Errorf("corrupted key file %s", s.Path())
	}

	return &Identity{Principal: auth.PrincipalOf(pub), Public: pub, Private: priv}, nil
}

// Principal returns the stored principal without unsealing the key.
func (s *Store) Principal() (string, error) {
	kf, err := s.read()
	if err != nil {
		return "", err
	}
	return kf.Principal, nil
}

func (s *Store) read() (*keyFile, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var kf keyFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path(), err)
	}
	if kf.Seed == nil || len(kf.PublicKey) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("corrupted key file %s", s.Path())
	}
	return &kf, nil
}
