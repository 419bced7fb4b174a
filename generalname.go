package x509gen

import (
	"github.com/mdean75/x509gen/internal/der"
)

// GeneralName context tags (RFC 5280, section 4.2.1.6). All three supported
// alternatives are IMPLICIT-tagged IA5Strings.
const (
	tagRFC822Name = 1
	tagDNSName    = 2
	tagURI        = 6
)

// GeneralName is a CHOICE over the rfc822Name, dNSName, and
// uniformResourceIdentifier alternatives. Exactly one field must be set:
// an empty GeneralName fails with ErrUnsupportedVariant and one with more
// than one alternative fails with ErrMalformedInput rather than silently
// picking a winner.
type GeneralName struct {
	RFC822 string
	DNS    string
	URI    string
}

func (g GeneralName) node() (der.Node, error) {
	type alt struct {
		tag   uint8
		value string
	}
	var selected []alt
	if g.RFC822 != "" {
		selected = append(selected, alt{tagRFC822Name, g.RFC822})
	}
	if g.DNS != "" {
		selected = append(selected, alt{tagDNSName, g.DNS})
	}
	if g.URI != "" {
		selected = append(selected, alt{tagURI, g.URI})
	}
	switch len(selected) {
	case 0:
		return nil, newError(CodeUnsupportedVariant,
			"unsupported name type: set one of RFC822, DNS, or URI")
	case 1:
	default:
		return nil, newError(CodeMalformedInput,
			"ambiguous general name: more than one alternative is set")
	}
	for i := 0; i < len(selected[0].value); i++ {
		if selected[0].value[i] > 0x7F {
			return nil, newError(CodeMalformedInput,
				"general name value is not an IA5 string")
		}
	}
	return der.ImplicitPrimitive(selected[0].tag, []byte(selected[0].value)), nil
}

// GeneralNames is an ordered sequence of at least one GeneralName.
type GeneralNames []GeneralName

func (g GeneralNames) node() (der.Node, error) {
	if len(g) == 0 {
		return nil, newError(CodeMissingField, "general names list is empty")
	}
	children := make([]der.Node, len(g))
	for i, gn := range g {
		n, err := gn.node()
		if err != nil {
			return nil, err
		}
		children[i] = n
	}
	return der.Sequence(children...), nil
}

// DistributionPointName is the distributionPoint CHOICE of a
// DistributionPoint. Only the fullName alternative is supported: an IMPLICIT
// [0] wrapping a GeneralNames. Relative-name distribution points are out
// of scope.
type DistributionPointName struct {
	// FullName holds the fullName alternative. Must be non-empty.
	FullName GeneralNames
}

func (d DistributionPointName) node() (der.Node, error) {
	if len(d.FullName) == 0 {
		return nil, newError(CodeUnsupportedVariant,
			"distribution point name requires a full name")
	}
	children := make([]der.Node, len(d.FullName))
	for i, gn := range d.FullName {
		n, err := gn.node()
		if err != nil {
			return nil, err
		}
		children[i] = n
	}
	// IMPLICIT [0] replaces the GeneralNames SEQUENCE tag.
	return der.ImplicitConstructed(0, children...), nil
}

// DistributionPoint is one entry of the CRLDistributionPoints extension. The
// name is wrapped in an EXPLICIT [0] tag because the inner
// DistributionPointName is a CHOICE. A DistributionPoint without a name
// encodes as an empty SEQUENCE, which is structurally valid but semantically
// empty; callers should not rely on it.
type DistributionPoint struct {
	Name *DistributionPointName
}

func (d DistributionPoint) node() (der.Node, error) {
	if d.Name == nil {
		return der.Sequence(), nil
	}
	inner, err := d.Name.node()
	if err != nil {
		return nil, err
	}
	return der.Sequence(der.Explicit(0, inner)), nil
}
