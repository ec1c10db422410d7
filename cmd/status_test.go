package cmd

import (
	"strings"
	"testing"

	"github.com/edwin/plugin-edwin/internal/edwin"
)

func evmAddress(k string) (string, error) {
	w, err := edwin.NewEVMWallet(k)
	if err != nil {
		return "", err
	}
	return w.Address().Hex(), nil
}

func TestWalletStatus(t *testing.T) {
	if got := walletStatus("", evmAddress); got != "(not set)" {
		t.Errorf("empty key: %q", got)
	}

	got := walletStatus("0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318", evmAddress)
	if got != "✓ 0x2c7536E3605D9C16a7a3D7b1898e529396a65c23" {
		t.Errorf("valid key: %q", got)
	}

	if got := walletStatus("0xnothex", evmAddress); !strings.HasPrefix(got, "✗ invalid EVM private key") {
		t.Errorf("invalid key: %q", got)
	}
}
