package x509gen

import (
	"fmt"
	"strings"

	"github.com/mdean75/x509gen/internal/der"
)

// stringKind selects the ASN.1 directory-string type used to encode an
// attribute value.
type stringKind int

const (
	kindUTF8 stringKind = iota
	kindPrintable
	kindTeletex
	kindIA5
)

// attributeStringKinds maps attribute type names to the directory-string
// kind their values must use. Types absent from the table use UTF8String.
// Country names are constrained to PrintableString by X.520.
var attributeStringKinds = map[string]stringKind{
	"C": kindPrintable,
}

// directoryString returns the value node for an attribute of the given type.
func directoryString(attrType, value string) (der.Node, error) {
	switch attributeStringKinds[attrType] {
	case kindUTF8:
		return der.UTF8String(value), nil
	case kindPrintable:
		return der.PrintableString(value), nil
	case kindTeletex:
		return der.TeletexString(value), nil
	case kindIA5:
		return der.IA5String(value), nil
	default:
		return nil, newError(CodeUnsupportedVariant,
			fmt.Sprintf("unsupported directory string kind for attribute type %q", attrType))
	}
}

// AttributeTypeAndValue is a single typed attribute of a relative
// distinguished name, such as C=US. Both fields must be set before encoding.
type AttributeTypeAndValue struct {
	// Type is the short attribute type name: C, CN, L, ST, O, or OU.
	Type string
	// Value is the attribute value.
	Value string
}

func (a AttributeTypeAndValue) node() (der.Node, error) {
	if a.Type == "" || a.Value == "" {
		return nil, newError(CodeMissingField,
			"attribute type and value must both be set")
	}
	typeNode, err := attributeTypeNode(a.Type)
	if err != nil {
		return nil, err
	}
	valueNode, err := directoryString(a.Type, a.Value)
	if err != nil {
		return nil, err
	}
	return der.Sequence(typeNode, valueNode), nil
}

// RDN is a relative distinguished name: a SET of at least one
// AttributeTypeAndValue. Names built by ParseName always hold exactly one.
type RDN []AttributeTypeAndValue

func (r RDN) node() (der.Node, error) {
	if len(r) == 0 {
		return nil, newError(CodeMissingField, "RDN has no attributes")
	}
	children := make([]der.Node, len(r))
	for i, atv := range r {
		n, err := atv.node()
		if err != nil {
			return nil, err
		}
		children[i] = n
	}
	return der.Set(children...), nil
}

// Name is an X.500 distinguished name: an ordered sequence of RDNs. Order is
// significant and is preserved as encoding order.
type Name struct {
	RDNs []RDN
}

func (n Name) node() (der.Node, error) {
	children := make([]der.Node, len(n.RDNs))
	for i, rdn := range n.RDNs {
		c, err := rdn.node()
		if err != nil {
			return nil, err
		}
		children[i] = c
	}
	return der.Sequence(children...), nil
}

// String renders the name back in the slash-separated textual form accepted
// by ParseName. Multi-attribute RDNs render each attribute as its own segment.
func (n Name) String() string {
	var b strings.Builder
	for _, rdn := range n.RDNs {
		for _, atv := range rdn {
			b.WriteByte('/')
			b.WriteString(atv.Type)
			b.WriteByte('=')
			b.WriteString(atv.Value)
		}
	}
	return b.String()
}

// ParseName parses a distinguished name in the form /TYPE=VALUE/TYPE=VALUE.
// A leading empty segment from the initial slash is discarded; every other
// segment must contain a literal '=' with a non-empty type and value, and
// becomes one single-attribute RDN. Segment order is preserved as encoding
// order.
func ParseName(dn string) (Name, error) {
	segments := strings.Split(dn, "/")
	if len(segments) > 0 && segments[0] == "" {
		segments = segments[1:]
	}
	if len(segments) == 0 {
		return Name{}, newError(CodeMalformedInput, "distinguished name is empty")
	}
	name := Name{RDNs: make([]RDN, 0, len(segments))}
	for _, seg := range segments {
		typ, val, ok := strings.Cut(seg, "=")
		if !ok || typ == "" || val == "" {
			return Name{}, newError(CodeMalformedInput,
				fmt.Sprintf("malformed attribute %q; want TYPE=VALUE", seg))
		}
		name.RDNs = append(name.RDNs, RDN{{Type: typ, Value: val}})
	}
	return name, nil
}
