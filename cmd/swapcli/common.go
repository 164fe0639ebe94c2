package main

import (
	"encoding/binary"
	"io"
	"io/ioutil"
	"os"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/client"
	"github.com/iov-one/swap/cmd/swapd/app"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/x/sigs"
	"golang.org/x/crypto/ed25519"
)

// env returns the value of an environment variable if provided (even if empty)
// or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

// newConnection returns the connection to the tendermint node at given
// address.
var newConnection = func(tmAddr string) client.Connection {
	return client.NewHTTPConnection(tmAddr)
}

func defaultKeyPath() string {
	return env("SWAPCLI_PRIV_KEY", os.Getenv("HOME")+"/.swapd.priv.key")
}

// loadKey reads a raw ed25519 private key from given file.
func loadKey(path string) (ed25519.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot read private key file: %s", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "invalid private key length: %d", len(raw))
	}
	return ed25519.PrivateKey(raw), nil
}

func keyAddress(key ed25519.PrivateKey) swap.Address {
	return sigs.PubKeyCondition(key.Public().(ed25519.PublicKey)).Address()
}

// writeTx serialize the transaction using a protocol buffer. First bytes
// written contain the information how much space the transaction takes.
func writeTx(w io.Writer, tx *app.Tx) (int, error) {
	b, err := swap.Marshal(tx)
	if err != nil {
		return 0, err
	}

	var size [txHeaderSize]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(b)))

	if n, err := w.Write(size[:]); err != nil {
		return n, err
	}
	if n, err := w.Write(b); err != nil {
		return n + txHeaderSize, err
	}
	return txHeaderSize + len(b), nil
}

func readTx(r io.Reader) (*app.Tx, int, error) {
	// When serialized using writeTx function, first bytes contain
	// information about the actual size of the transaction message.
	var size [txHeaderSize]byte
	if n, err := io.ReadFull(r, size[:]); err != nil {
		return nil, n, errors.Wrap(errors.ErrInput, err.Error())
	}
	msgSize := binary.BigEndian.Uint32(size[:])
	raw := make([]byte, msgSize)
	if n, err := io.ReadFull(r, raw); err != nil {
		return nil, n + txHeaderSize, errors.Wrap(errors.ErrInput, err.Error())
	}

	var tx app.Tx
	if err := swap.Unmarshal(raw, &tx); err != nil {
		return nil, int(msgSize + txHeaderSize), err
	}
	return &tx, int(msgSize + txHeaderSize), nil
}

const txHeaderSize = 4
