package x509gen

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"math/big"

	"github.com/mdean75/x509gen/internal/der"
)

// SubjectPublicKeyInfo pairs the fixed rsaEncryption AlgorithmIdentifier
// with a BIT STRING wrapping the PKCS #1 encoding of an RSA public key's
// modulus and exponent. Only RSA keys are supported.
type SubjectPublicKeyInfo struct {
	key *rsa.PublicKey
}

// PublicKeyFromKey builds a SubjectPublicKeyInfo from an in-memory RSA
// public key.
func PublicKeyFromKey(pub *rsa.PublicKey) *SubjectPublicKeyInfo {
	return &SubjectPublicKeyInfo{key: pub}
}

// PublicKeyFromPEM builds a SubjectPublicKeyInfo from a PEM-encoded public
// key in the "PUBLIC KEY" (PKIX) envelope. The embedded structure is
// destructured to recover the RSA modulus and exponent; any other envelope
// or key type fails with ErrMalformedInput.
func PublicKeyFromPEM(pemText []byte) (*SubjectPublicKeyInfo, error) {
	block, _ := pem.Decode(pemText)
	if block == nil || block.Type != "PUBLIC KEY" {
		return nil, newError(CodeMalformedInput, "unsupported key format: want a PUBLIC KEY PEM envelope")
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, wrapError(CodeMalformedInput, "unsupported key format", err)
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, newError(CodeMalformedInput,
			fmt.Sprintf("unsupported key format: %T is not an RSA public key", pub))
	}
	return &SubjectPublicKeyInfo{key: rsaPub}, nil
}

func (s *SubjectPublicKeyInfo) node() (der.Node, error) {
	if s == nil || s.key == nil {
		return nil, newError(CodeMissingField, "subject public key is not set")
	}
	// RSAPublicKey ::= SEQUENCE { modulus INTEGER, publicExponent INTEGER }
	inner, err := der.Sequence(
		der.Integer(s.key.N),
		der.Integer(big.NewInt(int64(s.key.E))),
	).Encode()
	if err != nil {
		return nil, wrapError(CodeEncode, "encoding RSA public key", err)
	}
	alg := NewAlgorithmIdentifier("rsaEncryption")
	algNode, err := alg.node()
	if err != nil {
		return nil, err
	}
	// The key payload is a whole number of octets, so the BIT STRING always
	// carries a zero unused-bits octet.
	return der.Sequence(algNode, der.BitString(inner)), nil
}
