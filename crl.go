package x509gen

import (
	"crypto"
	"math/big"

	"github.com/mdean75/x509gen/internal/der"
)

// CRLEntry is one revoked-certificate record: the serial number of the
// revoked certificate and the time it was revoked.
type CRLEntry struct {
	// SerialNumber of the revoked certificate. Required.
	SerialNumber *big.Int
	// RevocationDate of the certificate. Required.
	RevocationDate Time
}

func (e CRLEntry) node() (der.Node, error) {
	if e.SerialNumber == nil {
		return nil, newError(CodeMissingField, "revoked entry serial number is required")
	}
	at, err := e.RevocationDate.node()
	if err != nil {
		return nil, err
	}
	return der.Sequence(der.Integer(e.SerialNumber), at), nil
}

// TBSCertList is the to-be-signed body of a certificate revocation list.
// Like TBSCertificate it is never cached: every Encode call re-reads the
// current fields. The version field is omitted, the revoked-entry list is
// append-only, and the revokedCertificates SEQUENCE is omitted entirely when
// no entries have been added, matching the OPTIONAL field semantics of the
// grammar. TBSCertList methods are not safe for concurrent use.
type TBSCertList struct {
	sigAlg     *AlgorithmIdentifier
	issuer     Name
	issuerSet  bool
	thisUpdate Time
	nextUpdate Time
	entries    []CRLEntry
	errs       []error
}

// NewTBSCertList returns an empty TBSCertList.
func NewTBSCertList() *TBSCertList {
	return &TBSCertList{}
}

// SetSignatureAlgorithm sets the signature algorithm by symbolic name.
func (t *TBSCertList) SetSignatureAlgorithm(name string) *TBSCertList {
	t.sigAlg = NewAlgorithmIdentifier(name)
	return t
}

// SetIssuer parses a distinguished name string and sets it as the issuer.
func (t *TBSCertList) SetIssuer(dn string) *TBSCertList {
	name, err := ParseName(dn)
	if err != nil {
		t.errs = append(t.errs, wrapError(CodeMalformedInput, "issuer", err))
		return t
	}
	return t.SetIssuerName(name)
}

// SetIssuerName sets an already constructed issuer name.
func (t *TBSCertList) SetIssuerName(name Name) *TBSCertList {
	t.issuer = name
	t.issuerSet = true
	return t
}

// SetThisUpdate sets the time this CRL was issued.
func (t *TBSCertList) SetThisUpdate(at Time) *TBSCertList {
	t.thisUpdate = at
	return t
}

// SetNextUpdate sets the time of the next scheduled CRL. Optional; when
// never set the field is omitted.
func (t *TBSCertList) SetNextUpdate(at Time) *TBSCertList {
	t.nextUpdate = at
	return t
}

// AddRevokedCertificate appends one revoked-certificate entry. Entries are
// append-only; encoding order equals append order.
func (t *TBSCertList) AddRevokedCertificate(entry CRLEntry) *TBSCertList {
	t.entries = append(t.entries, entry)
	return t
}

func (t *TBSCertList) validate() error {
	var errs []error
	errs = append(errs, t.errs...)
	if t.sigAlg == nil {
		errs = append(errs, newError(CodeMissingField, "signature algorithm is required"))
	}
	if !t.issuerSet {
		errs = append(errs, newError(CodeMissingField, "issuer is required"))
	}
	if !t.thisUpdate.isSet() {
		errs = append(errs, newError(CodeMissingField, "thisUpdate is required"))
	}
	return joinErrors(errs)
}

// Encode returns the DER encoding of the TBSCertList body. The result is
// recomputed on every call.
func (t *TBSCertList) Encode() ([]byte, error) {
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
	thisUpdate, err := t.thisUpdate.node()
	if err != nil {
		return nil, err
	}

	children := []der.Node{sigAlg, issuer, thisUpdate}
	if t.nextUpdate.isSet() {
		next, nextErr := t.nextUpdate.node()
		if nextErr != nil {
			return nil, nextErr
		}
		children = append(children, next)
	}
	if len(t.entries) > 0 {
		entryNodes := make([]der.Node, len(t.entries))
		for i, e := range t.entries {
			n, entryErr := e.node()
			if entryErr != nil {
				return nil, entryErr
			}
			entryNodes[i] = n
		}
		children = append(children, der.Sequence(entryNodes...))
	}

	out, err := der.Sequence(children...).Encode()
	if err != nil {
		return nil, wrapError(CodeEncode, "encoding TBSCertList", err)
	}
	return out, nil
}

func (t *TBSCertList) signatureAlgorithmName() (string, error) {
	if t.sigAlg == nil {
		return "", newError(CodeMissingField, "signature algorithm is required")
	}
	if t.sigAlg.Name == "" {
		return "", newError(CodeUnknownIdentifier,
			"cannot sign: signature algorithm was set without a symbolic name")
	}
	return t.sigAlg.Name, nil
}

// CRL pairs a TBSCertList with the private key that will sign it. Sign
// produces an immutable SignedCRL; re-invoking Sign after mutating the body
// recomputes everything from scratch.
type CRL struct {
	tbs *TBSCertList
	key crypto.Signer
}

// NewCRL returns a CRL wrapping the given body and signing key. The key
// must be an RSA key.
func NewCRL(tbs *TBSCertList, key crypto.Signer) *CRL {
	return &CRL{tbs: tbs, key: key}
}

// Sign serializes the body, signs it, and assembles the signed container.
// The container's signatureAlgorithm is copied from the body's declared
// algorithm.
func (c *CRL) Sign() (*SignedCRL, error) {
	if c.tbs == nil {
		return nil, newError(CodeMissingField, "CRL body is required")
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
// signature over the body's current encoding.
func (c *CRL) Assemble(signature []byte) (*SignedCRL, error) {
	if len(signature) == 0 {
		return nil, newError(CodeMissingField, "signature is empty")
	}
	if c.tbs == nil {
		return nil, newError(CodeMissingField, "CRL body is required")
	}
	tbsDER, err := c.tbs.Encode()
	if err != nil {
		return nil, err
	}
	return c.assemble(tbsDER, signature)
}

func (c *CRL) assemble(tbsDER, signature []byte) (*SignedCRL, error) {
	algNode, err := c.tbs.sigAlg.node()
	if err != nil {
		return nil, err
	}
	out, err := der.Sequence(
		der.Raw(tbsDER),
		algNode,
		der.BitString(signature),
	).Encode()
	if err != nil {
		return nil, wrapError(CodeEncode, "assembling CRL", err)
	}
	return &SignedCRL{der: out}, nil
}
