package x509gen

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// PEM envelope labels for the two signed artifact kinds.
const (
	pemLabelCertificate = "CERTIFICATE"
	pemLabelCRL         = "X509 CRL"
)

// pemLineLength is the base64 body column width.
const pemLineLength = 64

// encodePEM renders DER bytes in a PEM envelope with a 64-column base64 body
// and CRLF line endings.
func encodePEM(label string, derBytes []byte) string {
	b64 := base64.StdEncoding.EncodeToString(derBytes)
	var b strings.Builder
	b.WriteString("-----BEGIN " + label + "-----\r\n")
	for len(b64) > pemLineLength {
		b.WriteString(b64[:pemLineLength])
		b.WriteString("\r\n")
		b64 = b64[pemLineLength:]
	}
	b.WriteString(b64)
	b.WriteString("\r\n-----END " + label + "-----\r\n")
	return b.String()
}

// SignedCertificate is the immutable result of signing a Certificate. The
// encoding is computed once at signing time; every accessor returns the
// same cached bytes.
type SignedCertificate struct {
	der []byte
}

// Bytes returns the DER encoding of the signed certificate.
func (s *SignedCertificate) Bytes() []byte { return s.der }

// Hex returns the DER encoding as a lowercase hex string.
func (s *SignedCertificate) Hex() string { return hex.EncodeToString(s.der) }

// PEM returns the certificate in the standard PEM envelope.
func (s *SignedCertificate) PEM() string { return encodePEM(pemLabelCertificate, s.der) }

// SignedCRL is the immutable result of signing a CRL.
type SignedCRL struct {
	der []byte
}

// Bytes returns the DER encoding of the signed CRL.
func (s *SignedCRL) Bytes() []byte { return s.der }

// Hex returns the DER encoding as a lowercase hex string.
func (s *SignedCRL) Hex() string { return hex.EncodeToString(s.der) }

// PEM returns the CRL in the standard PEM envelope.
func (s *SignedCRL) PEM() string { return encodePEM(pemLabelCRL, s.der) }
