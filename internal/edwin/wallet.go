package edwin

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mr-tron/base58"
)

var (
	ErrInvalidEVMKey    = errors.New("invalid EVM private key")
	ErrInvalidSolanaKey = errors.New("invalid Solana private key")
)

// EVMWallet is an account on an EVM chain.
type EVMWallet struct {
	address common.Address
}

// NewEVMWallet parses a hex private key, with or without the 0x prefix.
func NewEVMWallet(hexKey string) (*EVMWallet, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	key, err := crypto.HexToECDSA(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEVMKey, err)
	}
	return &EVMWallet{address: crypto.PubkeyToAddress(key.PublicKey)}, nil
}

// Address returns the checksummed account address.
func (w *EVMWallet) Address() common.Address { return w.address }

// SolanaWallet is an ed25519 Solana account.
type SolanaWallet struct {
	key ed25519.PrivateKey
}

// NewSolanaWallet parses a base58 secret: either the 64-byte keypair most
// wallets export or a bare 32-byte seed.
func NewSolanaWallet(secret string) (*SolanaWallet, error) {
	raw, err := base58.Decode(strings.TrimSpace(secret))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSolanaKey, err)
	}

	switch len(raw) {
	case ed25519.SeedSize:
		return &SolanaWallet{key: ed25519.NewKeyFromSeed(raw)}, nil
	case ed25519.PrivateKeySize:
		key := ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
		if !bytes.Equal(key[ed25519.SeedSize:], raw[ed25519.SeedSize:]) {
			return nil, fmt.Errorf("%w: public key does not match seed", ErrInvalidSolanaKey)
		}
		return &SolanaWallet{key: key}, nil
	default:
		return nil, fmt.Errorf("%w: expected %d or %d bytes, got %d",
			ErrInvalidSolanaKey, ed25519.SeedSize, ed25519.PrivateKeySize, len(raw))
	}
}

// Address returns the base58 public key.
func (w *SolanaWallet) Address() string {
	return base58.Encode(w.key.Public().(ed25519.PublicKey))
}
