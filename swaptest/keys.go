package swaptest

import (
	"crypto/rand"
	"testing"

	"github.com/iov-one/swap"
	"golang.org/x/crypto/ed25519"
)

// NewKey returns a freshly generated ed25519 private key.
func NewKey() ed25519.PrivateKey {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return priv
}

// KeyCondition returns the condition that a signature made with given key
// fulfills.
func KeyCondition(key ed25519.PrivateKey) swap.Condition {
	pub := key.Public().(ed25519.PublicKey)
	return swap.NewCondition("sigs", "ed25519", pub)
}

// NewCondition returns a condition of a new, random key.
func NewCondition() swap.Condition {
	return KeyCondition(NewKey())
}

// RandomAddr returns the address of a new, random condition.
func RandomAddr() swap.Address {
	return NewCondition().Address()
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation. The test fails if the address cannot be parsed.
func ParseAddress(t testing.TB, encodedAddress string) swap.Address {
	t.Helper()

	addr, err := swap.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
