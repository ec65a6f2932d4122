// Package wallet is a local stand-in for a browser wallet extension: it keeps
// one ed25519 key on disk and signs messages with it.
package wallet

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"learnplatform/internal/infrastructure/security"

	"github.com/mr-tron/base58"
)

var ErrNoKey = errors.New("no key found, run `devwallet keygen` first")

// Generate writes a new key to path, refusing to overwrite an existing one.
func Generate(path string) (*security.KeypairSigner, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%s already exists", path)
	}
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, []byte(base58.Encode(priv)+"\n"), 0o600); err != nil {
		return nil, err
	}
	return security.NewKeypairSigner(priv), nil
}

// Load reads a base58 encoded 64-byte private key, the format Solana CLIs
// export secret keys in.
func Load(path string) (*security.KeypairSigner, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoKey
	}
	if err != nil {
		return nil, err
	}
	raw, err := base58.Decode(strings.TrimSpace(string(data)))
	if err != nil || len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%s does not hold a valid ed25519 key", path)
	}
	return security.NewKeypairSigner(ed25519.PrivateKey(raw)), nil
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".devwallet/key"
	}
	return filepath.Join(home, ".devwallet", "key")
}
