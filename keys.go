package x509gen

import (
	"crypto"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/youmark/pkcs8"
)

// ParsePrivateKeyPEM imports an RSA private key from PEM text. Three
// envelopes are supported: "RSA PRIVATE KEY" (PKCS #1), "PRIVATE KEY"
// (PKCS #8), and "ENCRYPTED PRIVATE KEY" (passphrase-protected PKCS #8, for
// which passphrase must be non-empty). Any other envelope or key type fails
// with ErrMalformedInput.
func ParsePrivateKeyPEM(pemText []byte, passphrase string) (crypto.Signer, error) {
	block, _ := pem.Decode(pemText)
	if block == nil {
		return nil, newError(CodeMalformedInput, "unsupported key format: no PEM block found")
	}

	var (
		key any
		err error
	)
	switch block.Type {
	case "RSA PRIVATE KEY":
		key, err = x509.ParsePKCS1PrivateKey(block.Bytes)
	case "PRIVATE KEY":
		key, err = x509.ParsePKCS8PrivateKey(block.Bytes)
	case "ENCRYPTED PRIVATE KEY":
		if passphrase == "" {
			return nil, newError(CodeMalformedInput, "encrypted private key requires a passphrase")
		}
		key, err = pkcs8.ParsePKCS8PrivateKey(block.Bytes, []byte(passphrase))
	default:
		return nil, newError(CodeMalformedInput,
			fmt.Sprintf("unsupported key format: unexpected PEM envelope %q", block.Type))
	}
	if err != nil {
		return nil, wrapError(CodeMalformedInput, "unsupported key format", err)
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, newError(CodeMalformedInput,
			fmt.Sprintf("unsupported key format: %T is not an RSA private key", key))
	}
	return rsaKey, nil
}
