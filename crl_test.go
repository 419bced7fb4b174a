package x509gen

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509/pkix"
	"encoding/asn1"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTBSCertList builds a minimal CRL body.
func newTestTBSCertList(t *testing.T) *TBSCertList {
	t.Helper()
	return NewTBSCertList().
		SetSignatureAlgorithm("SHA256withRSA").
		SetIssuer("/C=US/O=a").
		SetThisUpdate(NewTime("130504235959Z"))
}

// parseCertList decodes a signed CRL into the stdlib CertificateList shape.
func parseCertList(t *testing.T, der []byte) *pkix.CertificateList {
	t.Helper()
	var list pkix.CertificateList
	rest, err := asn1.Unmarshal(der, &list)
	require.NoError(t, err)
	require.Empty(t, rest)
	return &list
}

func TestCRLSignEmptyOmitsRevokedSequence(t *testing.T) {
	key := newTestRSAKey(t)
	signed, err := NewCRL(newTestTBSCertList(t), key).Sign()
	require.NoError(t, err)

	list := parseCertList(t, signed.Bytes())
	assert.Empty(t, list.TBSCertList.RevokedCertificates)
	assert.True(t, list.TBSCertList.ThisUpdate.Equal(time.Date(2013, 5, 4, 23, 59, 59, 0, time.UTC)))
	assert.True(t, list.TBSCertList.NextUpdate.IsZero())

	// The optional version is omitted as well.
	assert.Zero(t, list.TBSCertList.Version)

	// Signature verifies over the TBS bytes.
	digest := sha256.Sum256(list.TBSCertList.Raw)
	require.NoError(t, rsa.VerifyPKCS1v15(&key.PublicKey, crypto.SHA256, digest[:], list.SignatureValue.Bytes))
}

func TestCRLWithRevokedEntry(t *testing.T) {
	key := newTestRSAKey(t)
	tbs := newTestTBSCertList(t).
		SetNextUpdate(NewTime("130604235959Z")).
		AddRevokedCertificate(CRLEntry{
			SerialNumber:   big.NewInt(4),
			RevocationDate: NewTime("130514235959Z"),
		})

	signed, err := NewCRL(tbs, key).Sign()
	require.NoError(t, err)

	list := parseCertList(t, signed.Bytes())
	require.Len(t, list.TBSCertList.RevokedCertificates, 1)
	entry := list.TBSCertList.RevokedCertificates[0]
	assert.EqualValues(t, 4, entry.SerialNumber.Int64())
	assert.True(t, entry.RevocationTime.Equal(time.Date(2013, 5, 14, 23, 59, 59, 0, time.UTC)))
	assert.True(t, list.TBSCertList.NextUpdate.Equal(time.Date(2013, 6, 4, 23, 59, 59, 0, time.UTC)))
}

func TestCRLEntryOrderPreserved(t *testing.T) {
	key := newTestRSAKey(t)
	tbs := newTestTBSCertList(t)
	for _, sn := range []int64{9, 3, 27} {
		tbs.AddRevokedCertificate(CRLEntry{
			SerialNumber:   big.NewInt(sn),
			RevocationDate: NewTime("130514235959Z"),
		})
	}

	signed, err := NewCRL(tbs, key).Sign()
	require.NoError(t, err)

	list := parseCertList(t, signed.Bytes())
	require.Len(t, list.TBSCertList.RevokedCertificates, 3)
	for i, want := range []int64{9, 3, 27} {
		assert.EqualValues(t, want, list.TBSCertList.RevokedCertificates[i].SerialNumber.Int64())
	}
}

func TestCRLPEM(t *testing.T) {
	key := newTestRSAKey(t)
	signed, err := NewCRL(newTestTBSCertList(t), key).Sign()
	require.NoError(t, err)

	pemText := signed.PEM()
	assert.True(t, strings.HasPrefix(pemText, "-----BEGIN X509 CRL-----\r\n"))
	assert.True(t, strings.HasSuffix(pemText, "-----END X509 CRL-----\r\n"))
}

func TestCRLSignIdempotent(t *testing.T) {
	key := newTestRSAKey(t)
	c := NewCRL(newTestTBSCertList(t), key)

	first, err := c.Sign()
	require.NoError(t, err)
	second, err := c.Sign()
	require.NoError(t, err)
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestCRLAssembleMatchesSign(t *testing.T) {
	key := newTestRSAKey(t)
	tbs := newTestTBSCertList(t)

	signed, err := NewCRL(tbs, key).Sign()
	require.NoError(t, err)

	tbsDER, err := tbs.Encode()
	require.NoError(t, err)
	digest := sha256.Sum256(tbsDER)
	sig, err := rsa.SignPKCS1v15(nil, key, crypto.SHA256, digest[:])
	require.NoError(t, err)

	assembled, err := NewCRL(tbs, nil).Assemble(sig)
	require.NoError(t, err)
	assert.Equal(t, signed.Bytes(), assembled.Bytes())
}

func TestTBSCertListMissingFields(t *testing.T) {
	_, err := NewTBSCertList().Encode()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))

	tbs := NewTBSCertList().
		SetSignatureAlgorithm("SHA256withRSA").
		SetIssuer("/C=US/O=a")
	_, err = tbs.Encode()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "thisUpdate")
}

func TestCRLEntryRequiresSerial(t *testing.T) {
	key := newTestRSAKey(t)
	tbs := newTestTBSCertList(t).
		AddRevokedCertificate(CRLEntry{RevocationDate: NewTime("130514235959Z")})

	_, err := NewCRL(tbs, key).Sign()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))
}
