package security

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mr-tron/base58"
)

var (
	ErrInvalidAddress   = errors.New("invalid wallet address")
	ErrInvalidSignature = errors.New("invalid signature")
)

type WalletVerifier interface {
	Verify(address string, message []byte, signature []byte) error
	DecodeSignature(text string) ([]byte, error)
}

// Ed25519Verifier checks Solana-style wallets: the address is the base58
// public key and signatures are raw 64-byte ed25519 signatures.
type Ed25519Verifier struct{}

func (Ed25519Verifier) Verify(address string, message []byte, signature []byte) error {
	pub, err := base58.Decode(address)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return ErrInvalidAddress
	}
	if len(signature) != ed25519.SignatureSize {
		return ErrInvalidSignature
	}
	if !ed25519.Verify(ed25519.PublicKey(pub), message, signature) {
		return ErrInvalidSignature
	}
	return nil
}

func (Ed25519Verifier) DecodeSignature(text string) ([]byte, error) {
	sig, err := base58.Decode(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return sig, nil
}

// EthereumVerifier checks personal_sign signatures from 0x wallets by
// recovering the signer address.
type EthereumVerifier struct{}

func (EthereumVerifier) Verify(address string, message []byte, signature []byte) error {
	if !common.IsHexAddress(address) {
		return ErrInvalidAddress
	}
	if len(signature) != crypto.SignatureLength {
		return ErrInvalidSignature
	}

	// personal_sign wallets return v as 27 or 28. Only that encoding is
	// accepted so every signature has exactly one valid byte form.
	v := signature[crypto.RecoveryIDOffset]
	if v != 27 && v != 28 {
		return ErrInvalidSignature
	}
	sig := make([]byte, len(signature))
	copy(sig, signature)
	sig[crypto.RecoveryIDOffset] = v - 27

	pub, err := crypto.SigToPub(accounts.TextHash(message), sig)
	if err != nil {
		return ErrInvalidSignature
	}
	if crypto.PubkeyToAddress(*pub) != common.HexToAddress(address) {
		return ErrInvalidSignature
	}
	return nil
}

func (EthereumVerifier) DecodeSignature(text string) ([]byte, error) {
	sig, err := hexutil.Decode(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return sig, nil
}

// MultiVerifier routes 0x addresses to Ethereum and everything else to ed25519.
type MultiVerifier struct {
	Solana   Ed25519Verifier
	Ethereum EthereumVerifier
}

func NewMultiVerifier() *MultiVerifier {
	return &MultiVerifier{}
}

func (m *MultiVerifier) pick(address string) WalletVerifier {
	if strings.HasPrefix(address, "0x") {
		return m.Ethereum
	}
	return m.Solana
}

func (m *MultiVerifier) Verify(address string, message []byte, signature []byte) error {
	return m.pick(address).Verify(address, message, signature)
}

// DecodeSignature accepts hex for 0x signatures and base58 otherwise.
func (m *MultiVerifier) DecodeSignature(text string) ([]byte, error) {
	if strings.HasPrefix(text, "0x") {
		return m.Ethereum.DecodeSignature(text)
	}
	return m.Solana.DecodeSignature(text)
}

// EncodeSignature is the text form a signature is stored and transmitted in.
func EncodeSignature(sig []byte) string {
	return base58.Encode(sig)
}

// EncodeAddress renders an ed25519 public key as a wallet address.
func EncodeAddress(pub ed25519.PublicKey) string {
	return base58.Encode(pub)
}
