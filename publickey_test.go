package x509gen

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRSAKey generates an RSA key for testing.
func newTestRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func TestPublicKeyFromKeyMatchesPKIX(t *testing.T) {
	key := newTestRSAKey(t)

	n, err := PublicKeyFromKey(&key.PublicKey).node()
	require.NoError(t, err)
	got, err := n.Encode()
	require.NoError(t, err)

	want, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPublicKeyFromPEM(t *testing.T) {
	key := newTestRSAKey(t)
	pkix, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemText := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pkix})

	spki, err := PublicKeyFromPEM(pemText)
	require.NoError(t, err)
	n, err := spki.node()
	require.NoError(t, err)
	got, err := n.Encode()
	require.NoError(t, err)
	assert.Equal(t, pkix, got)
}

func TestPublicKeyFromPEMRejectsOtherEnvelopes(t *testing.T) {
	key := newTestRSAKey(t)
	pkcs1 := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PUBLIC KEY",
		Bytes: x509.MarshalPKCS1PublicKey(&key.PublicKey),
	})

	_, err := PublicKeyFromPEM(pkcs1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))

	_, err = PublicKeyFromPEM([]byte("not pem at all"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))
}

func TestPublicKeyFromPEMRejectsNonRSA(t *testing.T) {
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	pkix, err := x509.MarshalPKIXPublicKey(&ecKey.PublicKey)
	require.NoError(t, err)
	pemText := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pkix})

	_, err = PublicKeyFromPEM(pemText)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))
}

func TestPublicKeyUnset(t *testing.T) {
	var spki *SubjectPublicKeyInfo
	_, err := spki.node()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))
}
