package security

import (
	"context"
	"crypto/ed25519"
	"errors"
)

var ErrSignatureRejected = errors.New("signature request was rejected")

// Signer is the wallet's ability to sign an arbitrary message.
type Signer interface {
	SignMessage(ctx context.Context, message []byte) ([]byte, error)
}

// KeypairSigner signs with a locally held ed25519 key.
type KeypairSigner struct {
	key ed25519.PrivateKey
}

func NewKeypairSigner(key ed25519.PrivateKey) *KeypairSigner {
	return &KeypairSigner{key: key}
}

func (s *KeypairSigner) Address() string {
	return EncodeAddress(s.key.Public().(ed25519.PublicKey))
}

func (s *KeypairSigner) SignMessage(ctx context.Context, message []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ed25519.Sign(s.key, message), nil
}

// PresignedSigner hands back a signature the browser wallet already produced.
type PresignedSigner struct {
	Signature []byte
}

func (s PresignedSigner) SignMessage(ctx context.Context, _ []byte) ([]byte, error) {
	if len(s.Signature) == 0 {
		return nil, ErrSignatureRejected
	}
	return s.Signature, nil
}
