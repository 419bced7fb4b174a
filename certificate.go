package x509gen

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"math/big"

	"github.com/mdean75/x509gen/internal/der"
)

// TBSCertificate is the to-be-signed body of a certificate. Builder methods
// accumulate fields and errors; Encode reports all problems at once.
//
// A TBSCertificate is never cached: every Encode call re-reads the current
// field values, so mutating a field after a prior Encode and encoding again
// yields the updated bytes. The version is fixed at v3. TBSCertificate
// methods are not safe for concurrent use.
type TBSCertificate struct {
	serial     *big.Int
	sigAlg     *AlgorithmIdentifier
	issuer     Name
	issuerSet  bool
	notBefore  Time
	notAfter   Time
	subject    Name
	subjectSet bool
	spki       *SubjectPublicKeyInfo
	extensions []Extension
	errs       []error
}

// NewTBSCertificate returns an empty TBSCertificate.
func NewTBSCertificate() *TBSCertificate {
	return &TBSCertificate{}
}

// SetSerialNumber sets the certificate serial number.
func (t *TBSCertificate) SetSerialNumber(serial *big.Int) *TBSCertificate {
	if serial == nil {
		t.errs = append(t.errs, newError(CodeMissingField, "serial number is nil"))
		return t
	}
	t.serial = serial
	return t
}

// SetSerialNumberInt sets the serial number from a small integer.
func (t *TBSCertificate) SetSerialNumberInt(serial int64) *TBSCertificate {
	return t.SetSerialNumber(big.NewInt(serial))
}

// SetSignatureAlgorithm sets the signature algorithm by symbolic name, such
// as "SHA256withRSA". The name is resolved against the registry at encode
// time.
func (t *TBSCertificate) SetSignatureAlgorithm(name string) *TBSCertificate {
	t.sigAlg = NewAlgorithmIdentifier(name)
	return t
}

// SetIssuer parses a distinguished name string such as "/C=US/O=a" and sets
// it as the issuer.
func (t *TBSCertificate) SetIssuer(dn string) *TBSCertificate {
	name, err := ParseName(dn)
	if err != nil {
		t.errs = append(t.errs, wrapError(CodeMalformedInput, "issuer", err))
		return t
	}
	return t.SetIssuerName(name)
}

// SetIssuerName sets an already constructed issuer name.
func (t *TBSCertificate) SetIssuerName(name Name) *TBSCertificate {
	t.issuer = name
	t.issuerSet = true
	return t
}

// SetNotBefore sets the start of the validity period.
func (t *TBSCertificate) SetNotBefore(at Time) *TBSCertificate {
	t.notBefore = at
	return t
}

// SetNotAfter sets the end of the validity period.
func (t *TBSCertificate) SetNotAfter(at Time) *TBSCertificate {
	t.notAfter = at
	return t
}

// SetSubject parses a distinguished name string and sets it as the subject.
func (t *TBSCertificate) SetSubject(dn string) *TBSCertificate {
	name, err := ParseName(dn)
	if err != nil {
		t.errs = append(t.errs, wrapError(CodeMalformedInput, "subject", err))
		return t
	}
	return t.SetSubjectName(name)
}

// SetSubjectName sets an already constructed subject name.
func (t *TBSCertificate) SetSubjectName(name Name) *TBSCertificate {
	t.subject = name
	t.subjectSet = true
	return t
}

// SetPublicKey sets the subject public key from an in-memory RSA key.
func (t *TBSCertificate) SetPublicKey(pub *rsa.PublicKey) *TBSCertificate {
	t.spki = PublicKeyFromKey(pub)
	return t
}

// SetPublicKeyPEM sets the subject public key from a PEM "PUBLIC KEY"
// envelope.
func (t *TBSCertificate) SetPublicKeyPEM(pemText []byte) *TBSCertificate {
	spki, err := PublicKeyFromPEM(pemText)
	if err != nil {
		t.errs = append(t.errs, err)
		return t
	}
	t.spki = spki
	return t
}

// AddExtension appends an extension. Extensions are append-only; encoding
// order equals append order.
func (t *TBSCertificate) AddExtension(ext Extension) *TBSCertificate {
	if ext == nil {
		t.errs = append(t.errs, newError(CodeMissingField, "extension is nil"))
		return t
	}
	t.extensions = append(t.extensions, ext)
	return t
}

// validate checks that every required field is set and no builder errors
// accumulated.
func (t *TBSCertificate) validate() error {
	var errs []error
	errs = append(errs, t.errs...)
	if t.serial == nil {
		errs = append(errs, newError(CodeMissingField, "serial number is required"))
	}
	if t.sigAlg == nil {
		errs = append(errs, newError(CodeMissingField, "signature algorithm is required"))
	}
	if !t.issuerSet {
		errs = append(errs, newError(CodeMissingField, "issuer is required"))
	}
	if !t.notBefore.isSet() {
		errs = append(errs, newError(CodeMissingField, "notBefore is required"))
	}
	if !t.notAfter.isSet() {
		errs = append(errs, newError(CodeMissingField, "notAfter is required"))
	}
	if !t.subjectSet {
		errs = append(errs, newError(CodeMissingField, "subject is required"))
	}
	if t.spki == nil {
		errs = append(errs, newError(CodeMissingField, "subject public key is required"))
	}
	return joinErrors(errs)
}

// Encode returns the DER encoding of the TBSCertificate body. The result is
// recomputed on every call.
func (t *TBSCertificate) Encode() ([]byte, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}
	sigAlg, err := t.sigAlg.node()
	if err != nil {
		return nil, err
	}
	issuer, err := t.issuer.node()
	if err != nil {
		return nil, err
	}
	notBefore, err := t.notBefore.node()
	if err != nil {
		return nil, err
	}
	notAfter, err := t.notAfter.node()
	if err != nil {
		return nil, err
	}
	subject, err := t.subject.node()
	if err != nil {
		return nil, err
	}
	spki, err := t.spki.node()
	if err != nil {
		return nil, err
	}

	children := []der.Node{
		// version [0] EXPLICIT INTEGER: v3 is encoded as 2.
		der.Explicit(0, der.IntegerFromInt(2)),
		der.Integer(t.serial),
		sigAlg,
		issuer,
		der.Sequence(notBefore, notAfter),
		subject,
		spki,
	}
	if len(t.extensions) > 0 {
		extNodes := make([]der.Node, len(t.extensions))
		for i, ext := range t.extensions {
			n, extErr := extensionNode(ext)
			if extErr != nil {
				return nil, extErr
			}
			extNodes[i] = n
		}
		children = append(children, der.Explicit(3, der.Sequence(extNodes...)))
	}

	out, err := der.Sequence(children...).Encode()
	if err != nil {
		return nil, wrapError(CodeEncode, "encoding TBSCertificate", err)
	}
	return out, nil
}

// Certificate pairs a TBSCertificate with the private key that will sign it.
// A Certificate itself holds no encoding; Sign produces an immutable
// SignedCertificate, so requesting bytes from an unsigned certificate is not
// expressible. Re-invoking Sign after mutating the body recomputes
// everything from scratch.
type Certificate struct {
	tbs *TBSCertificate
	key crypto.Signer
}

// NewCertificate returns a Certificate wrapping the given body and signing
// key. The key must be an RSA key.
func NewCertificate(tbs *TBSCertificate, key crypto.Signer) *Certificate {
	return &Certificate{tbs: tbs, key: key}
}

// Sign serializes the body, signs it with the installed key, and assembles
// the signed container. The container's signatureAlgorithm is copied from
// the body's own declared algorithm, which is what keeps the two identical
// as X.509 requires.
func (c *Certificate) Sign() (*SignedCertificate, error) {
	if c.tbs == nil {
		return nil, newError(CodeMissingField, "certificate body is required")
	}
	if c.key == nil {
		return nil, newError(CodeMissingField, "private key is required")
	}
	sig, tbsDER, err := signTBS(c.tbs, c.key)
	if err != nil {
		return nil, err
	}
	return c.assemble(tbsDER, sig)
}

// Assemble builds the signed container from an externally computed raw
// signature over the body's current encoding. This supports signing with
// keys the process cannot hold, such as an HSM: encode the body, sign it
// elsewhere, and hand the signature back here.
func (c *Certificate) Assemble(signature []byte) (*SignedCertificate, error) {
	if len(signature) == 0 {
		return nil, newError(CodeMissingField, "signature is empty")
	}
	if c.tbs == nil {
		return nil, newError(CodeMissingField, "certificate body is required")
	}
	tbsDER, err := c.tbs.Encode()
	if err != nil {
		return nil, err
	}
	return c.assemble(tbsDER, signature)
}

func (c *Certificate) assemble(tbsDER, signature []byte) (*SignedCertificate, error) {
	algNode, err := c.tbs.sigAlg.node()
	if err != nil {
		return nil, err
	}
	// The signature payload is a whole number of octets, so the BIT STRING
	// carries a zero unused-bits octet.
	out, err := der.Sequence(
		der.Raw(tbsDER),
		algNode,
		der.BitString(signature),
	).Encode()
	if err != nil {
		return nil, wrapError(CodeEncode, "assembling certificate", err)
	}
	return &SignedCertificate{der: out}, nil
}

// tbsBody is the common surface of TBSCertificate and TBSCertList needed for
// signing: an encodable body declaring its own signature algorithm.
type tbsBody interface {
	Encode() ([]byte, error)
	signatureAlgorithmName() (string, error)
}

func (t *TBSCertificate) signatureAlgorithmName() (string, error) {
	if t.sigAlg == nil {
		return "", newError(CodeMissingField, "signature algorithm is required")
	}
	if t.sigAlg.Name == "" {
		return "", newError(CodeUnknownIdentifier,
			"cannot sign: signature algorithm was set without a symbolic name")
	}
	return t.sigAlg.Name, nil
}

// signTBS encodes body and computes an RSA PKCS#1 v1.5 signature over the
// encoding with the digest declared by the body's signature algorithm.
// Returns the signature and the body bytes it covers.
func signTBS(body tbsBody, key crypto.Signer) (sig, tbsDER []byte, err error) {
	if body == nil {
		return nil, nil, newError(CodeMissingField, "body to sign is required")
	}
	if _, ok := key.Public().(*rsa.PublicKey); !ok {
		return nil, nil, newError(CodeMalformedInput,
			fmt.Sprintf("unsupported key format: %T is not an RSA key", key.Public()))
	}
	algName, err := body.signatureAlgorithmName()
	if err != nil {
		return nil, nil, err
	}
	hash, err := signatureHash(algName)
	if err != nil {
		return nil, nil, err
	}
	tbsDER, err = body.Encode()
	if err != nil {
		return nil, nil, err
	}
	h := hash.New()
	h.Write(tbsDER)
	sig, err = key.Sign(rand.Reader, h.Sum(nil), hash)
	if err != nil {
		return nil, nil, wrapError(CodeSign, "signing", err)
	}
	return sig, tbsDER, nil
}
