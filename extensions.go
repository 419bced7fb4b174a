package x509gen

import (
	"github.com/mdean75/x509gen/internal/der"
)

// Extension is one X.509v3 certificate extension. The variant set is closed:
// KeyUsage, BasicConstraints, CRLDistributionPoints, and ExtKeyUsage. All
// variants share a single encode path; only the OID, the criticality flag,
// and the inner value differ.
type Extension interface {
	extensionOID() (der.Node, error)
	extensionCritical() bool
	extensionValue() (der.Node, error)
}

// extensionNode encodes any Extension variant:
//
//	Extension ::= SEQUENCE {
//	    extnID      OBJECT IDENTIFIER,
//	    critical    BOOLEAN DEFAULT FALSE,
//	    extnValue   OCTET STRING }
//
// The critical BOOLEAN is emitted only when true; DER forbids encoding a
// DEFAULT value, so a false flag produces no node at all.
func extensionNode(e Extension) (der.Node, error) {
	oid, err := e.extensionOID()
	if err != nil {
		return nil, err
	}
	valueNode, err := e.extensionValue()
	if err != nil {
		return nil, err
	}
	valueDER, err := valueNode.Encode()
	if err != nil {
		return nil, wrapError(CodeEncode, "encoding extension value", err)
	}
	children := make([]der.Node, 0, 3)
	children = append(children, oid)
	if e.extensionCritical() {
		children = append(children, der.Boolean(true))
	}
	children = append(children, der.OctetString(valueDER))
	return der.Sequence(children...), nil
}

// KeyUsage is the keyUsage extension. Its value is a BIT STRING built
// directly from a pattern of '0' and '1' characters, most significant bit
// (digitalSignature) first: "11" asserts digitalSignature and nonRepudiation.
type KeyUsage struct {
	// Bits is the named-bit pattern. Required.
	Bits string
	// Critical marks the extension critical.
	Critical bool
}

func (k KeyUsage) extensionOID() (der.Node, error) { return symbolicNode("keyUsage") }
func (k KeyUsage) extensionCritical() bool         { return k.Critical }

func (k KeyUsage) extensionValue() (der.Node, error) {
	if k.Bits == "" {
		return nil, newError(CodeMissingField, "key usage bit pattern is not set")
	}
	return der.NamedBitString(k.Bits), nil
}

// BasicConstraints is the basicConstraints extension. The cA BOOLEAN is
// included only when true and the pathLenConstraint INTEGER only when
// non-negative, so the zero-value combination {CA: false, PathLen: -1}
// encodes as an empty SEQUENCE.
type BasicConstraints struct {
	// CA asserts that the subject is a certificate authority.
	CA bool
	// PathLen is the pathLenConstraint. Negative values omit the field;
	// use NewBasicConstraints to get the omitted form by default.
	PathLen int
	// Critical marks the extension critical.
	Critical bool
}

// NewBasicConstraints returns a BasicConstraints with the path length
// constraint omitted.
func NewBasicConstraints(ca bool) *BasicConstraints {
	return &BasicConstraints{CA: ca, PathLen: -1}
}

func (b *BasicConstraints) extensionOID() (der.Node, error) {
	return symbolicNode("basicConstraints")
}
func (b *BasicConstraints) extensionCritical() bool { return b.Critical }

func (b *BasicConstraints) extensionValue() (der.Node, error) {
	var children []der.Node
	if b.CA {
		children = append(children, der.Boolean(true))
	}
	if b.PathLen >= 0 {
		children = append(children, der.IntegerFromInt(int64(b.PathLen)))
	}
	return der.Sequence(children...), nil
}

// ExtKeyUsage is the extKeyUsage extension: a SEQUENCE of key purpose OIDs.
// Each purpose is either a symbolic name from the registry ("serverAuth",
// "clientAuth", ...) or a dotted-decimal OID.
type ExtKeyUsage struct {
	// Purposes lists the key purposes. Required.
	Purposes []string
	// Critical marks the extension critical.
	Critical bool
}

func (e ExtKeyUsage) extensionOID() (der.Node, error) { return symbolicNode("extKeyUsage") }
func (e ExtKeyUsage) extensionCritical() bool         { return e.Critical }

func (e ExtKeyUsage) extensionValue() (der.Node, error) {
	if len(e.Purposes) == 0 {
		return nil, newError(CodeMissingField, "extended key usage has no purposes")
	}
	children := make([]der.Node, len(e.Purposes))
	for i, p := range e.Purposes {
		n, err := oidNodeFor(p)
		if err != nil {
			return nil, err
		}
		children[i] = n
	}
	return der.Sequence(children...), nil
}

// CRLDistributionPoints is the cRLDistributionPoints extension. It is built
// either from an explicit list of distribution points or, as a convenience,
// from a single URI that is synthesized into one full-name distribution
// point. Points takes precedence when both are set.
type CRLDistributionPoints struct {
	// Points is the explicit distribution point list.
	Points []DistributionPoint
	// URI is the single-URI convenience form, used when Points is empty.
	URI string
	// Critical marks the extension critical.
	Critical bool
}

func (c CRLDistributionPoints) extensionOID() (der.Node, error) {
	return symbolicNode("cRLDistributionPoints")
}
func (c CRLDistributionPoints) extensionCritical() bool { return c.Critical }

func (c CRLDistributionPoints) extensionValue() (der.Node, error) {
	points := c.Points
	if len(points) == 0 {
		if c.URI == "" {
			return nil, newError(CodeMissingField,
				"CRL distribution points extension has neither points nor a URI")
		}
		points = []DistributionPoint{{
			Name: &DistributionPointName{FullName: GeneralNames{{URI: c.URI}}},
		}}
	}
	children := make([]der.Node, len(points))
	for i, dp := range points {
		n, err := dp.node()
		if err != nil {
			return nil, err
		}
		children[i] = n
	}
	return der.Sequence(children...), nil
}
