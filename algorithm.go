package x509gen

import (
	"crypto"
	"fmt"

	// Register the digest implementations used by the signature-name table.
	_ "crypto/md5"
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"

	"github.com/mdean75/x509gen/internal/der"
)

// AlgorithmIdentifier is an ASN.1 AlgorithmIdentifier: an algorithm OID plus
// optional parameters. The OID is resolved from the symbolic name lazily at
// encode time; parameters default to NULL when unspecified, which is the
// correct form for every RSA algorithm this package emits.
type AlgorithmIdentifier struct {
	// Name is a symbolic algorithm name such as "SHA256withRSA" or
	// "rsaEncryption", or a dotted-decimal OID.
	Name string

	params der.Node
}

// NewAlgorithmIdentifier returns an AlgorithmIdentifier for a symbolic name.
func NewAlgorithmIdentifier(name string) *AlgorithmIdentifier {
	return &AlgorithmIdentifier{Name: name}
}

// WithParameters replaces the default NULL parameters node.
func (a *AlgorithmIdentifier) WithParameters(params der.Node) *AlgorithmIdentifier {
	a.params = params
	return a
}

func (a *AlgorithmIdentifier) node() (der.Node, error) {
	if a == nil {
		return nil, newError(CodeMissingField, "algorithm identifier is not set")
	}
	if a.Name == "" {
		return nil, newError(CodeMissingField, "algorithm identifier has no name")
	}
	oid, err := oidNodeFor(a.Name)
	if err != nil {
		return nil, err
	}
	params := a.params
	if params == nil {
		params = der.Null()
	}
	return der.Sequence(oid, params), nil
}

// signatureHashes maps signature algorithm names to the digest they use.
// Only RSA PKCS1v15 algorithms are supported for signing.
var signatureHashes = map[string]crypto.Hash{
	"MD5withRSA":    crypto.MD5,
	"SHA1withRSA":   crypto.SHA1,
	"SHA224withRSA": crypto.SHA224,
	"SHA256withRSA": crypto.SHA256,
	"SHA384withRSA": crypto.SHA384,
	"SHA512withRSA": crypto.SHA512,
}

// signatureHash returns the digest algorithm for a signature algorithm name.
func signatureHash(name string) (crypto.Hash, error) {
	h, ok := signatureHashes[name]
	if !ok {
		return 0, newError(CodeUnknownIdentifier,
			fmt.Sprintf("unknown signature algorithm %q", name))
	}
	if !h.Available() {
		return 0, newError(CodeUnknownIdentifier,
			fmt.Sprintf("digest for %q is not available in this build", name))
	}
	return h, nil
}
