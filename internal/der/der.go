// Package der models DER-encoded ASN.1 values as trees of encodable nodes.
//
// Each node is either a primitive leaf (INTEGER, BIT STRING, OBJECT
// IDENTIFIER, ...) or a constructed node owning an ordered sequence of
// children (SEQUENCE, SET, tagged wrappers). Encoding flows upward: a node
// asks its children to encode and wraps the concatenation. All tag and
// length emission is delegated to golang.org/x/crypto/cryptobyte, which
// produces canonical DER (X.690 section 10); this package only declares
// structure.
//
// Nodes are immutable after construction and safe for concurrent encoding.
package der

import (
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"

	encasn1 "encoding/asn1"
)

// Node is a single encodable ASN.1 value.
type Node interface {
	// Encode returns the complete DER encoding of the node, including its
	// tag and length octets.
	Encode() ([]byte, error)
}

// build runs f against a fresh builder and returns the accumulated bytes.
func build(f func(b *cryptobyte.Builder)) ([]byte, error) {
	var b cryptobyte.Builder
	f(&b)
	return b.Bytes()
}

// encodeAll encodes every child in order, stopping at the first failure.
func encodeAll(children []Node) ([][]byte, error) {
	out := make([][]byte, 0, len(children))
	for i, c := range children {
		if c == nil {
			return nil, fmt.Errorf("der: child %d is nil", i)
		}
		enc, err := c.Encode()
		if err != nil {
			return nil, err
		}
		out = append(out, enc)
	}
	return out, nil
}

// --- Primitive leaves ---

type integerNode struct{ v *big.Int }

// Integer returns an INTEGER node for v.
func Integer(v *big.Int) Node { return integerNode{v: v} }

// IntegerFromInt returns an INTEGER node for a small integer value.
func IntegerFromInt(v int64) Node { return integerNode{v: big.NewInt(v)} }

func (n integerNode) Encode() ([]byte, error) {
	if n.v == nil {
		return nil, errors.New("der: INTEGER value is nil")
	}
	return build(func(b *cryptobyte.Builder) { b.AddASN1BigInt(n.v) })
}

type booleanNode struct{ v bool }

// Boolean returns a BOOLEAN node. DER encodes TRUE as 0xFF.
func Boolean(v bool) Node { return booleanNode{v: v} }

func (n booleanNode) Encode() ([]byte, error) {
	return build(func(b *cryptobyte.Builder) { b.AddASN1Boolean(n.v) })
}

type nullNode struct{}

// Null returns a NULL node.
func Null() Node { return nullNode{} }

func (nullNode) Encode() ([]byte, error) {
	return build(func(b *cryptobyte.Builder) { b.AddASN1NULL() })
}

type oidNode struct{ oid encasn1.ObjectIdentifier }

// ObjectIdentifier returns an OBJECT IDENTIFIER node.
func ObjectIdentifier(oid encasn1.ObjectIdentifier) Node { return oidNode{oid: oid} }

func (n oidNode) Encode() ([]byte, error) {
	if len(n.oid) == 0 {
		return nil, errors.New("der: OBJECT IDENTIFIER is empty")
	}
	return build(func(b *cryptobyte.Builder) { b.AddASN1ObjectIdentifier(n.oid) })
}

type octetStringNode struct{ v []byte }

// OctetString returns an OCTET STRING node wrapping v.
func OctetString(v []byte) Node { return octetStringNode{v: v} }

func (n octetStringNode) Encode() ([]byte, error) {
	return build(func(b *cryptobyte.Builder) { b.AddASN1OctetString(n.v) })
}

type bitStringNode struct{ v []byte }

// BitString returns a BIT STRING node whose payload is a whole number of
// octets. The unused-bits octet is always zero.
func BitString(v []byte) Node { return bitStringNode{v: v} }

func (n bitStringNode) Encode() ([]byte, error) {
	return build(func(b *cryptobyte.Builder) { b.AddASN1BitString(n.v) })
}

type namedBitStringNode struct{ bits string }

// NamedBitString returns a BIT STRING node built from a pattern of '0' and
// '1' characters, most significant bit first. The pattern length need not be
// a multiple of eight; the unused-bits octet reflects the padding.
func NamedBitString(bits string) Node { return namedBitStringNode{bits: bits} }

func (n namedBitStringNode) Encode() ([]byte, error) {
	if n.bits == "" {
		return build(func(b *cryptobyte.Builder) {
			b.AddASN1(cbasn1.BIT_STRING, func(c *cryptobyte.Builder) { c.AddUint8(0) })
		})
	}
	data := make([]byte, (len(n.bits)+7)/8)
	for i := 0; i < len(n.bits); i++ {
		switch n.bits[i] {
		case '1':
			data[i/8] |= 0x80 >> uint(i%8)
		case '0':
		default:
			return nil, fmt.Errorf("der: bit pattern contains %q; only '0' and '1' are allowed", n.bits[i])
		}
	}
	unused := uint8(len(data)*8 - len(n.bits))
	return build(func(b *cryptobyte.Builder) {
		b.AddASN1(cbasn1.BIT_STRING, func(c *cryptobyte.Builder) {
			c.AddUint8(unused)
			c.AddBytes(data)
		})
	})
}

// stringNode covers every restricted character string type plus the two time
// types: all of them encode as the raw byte value under their universal tag.
type stringNode struct {
	tag cbasn1.Tag
	v   string
}

// UTF8String returns a UTF8String node.
func UTF8String(v string) Node { return stringNode{tag: cbasn1.UTF8String, v: v} }

// PrintableString returns a PrintableString node.
func PrintableString(v string) Node { return stringNode{tag: cbasn1.PrintableString, v: v} }

// TeletexString returns a TeletexString (T61String) node.
func TeletexString(v string) Node { return stringNode{tag: cbasn1.T61String, v: v} }

// IA5String returns an IA5String node.
func IA5String(v string) Node { return stringNode{tag: cbasn1.IA5String, v: v} }

// UTCTime returns a UTCTime node wrapping an already formatted value such as
// "130504235959Z". The value is emitted verbatim.
func UTCTime(v string) Node { return stringNode{tag: cbasn1.UTCTime, v: v} }

// GeneralizedTime returns a GeneralizedTime node wrapping an already
// formatted value such as "20500504235959Z". The value is emitted verbatim.
func GeneralizedTime(v string) Node { return stringNode{tag: cbasn1.GeneralizedTime, v: v} }

func (n stringNode) Encode() ([]byte, error) {
	if n.v == "" {
		return nil, errors.New("der: string value is empty")
	}
	for i := 0; i < len(n.v); i++ {
		if n.v[i] > 0x7F && n.tag != cbasn1.UTF8String && n.tag != cbasn1.T61String {
			return nil, fmt.Errorf("der: byte 0x%02x is not valid in this string type", n.v[i])
		}
	}
	return build(func(b *cryptobyte.Builder) {
		b.AddASN1(n.tag, func(c *cryptobyte.Builder) { c.AddBytes([]byte(n.v)) })
	})
}

// --- Constructed nodes ---

type constructedNode struct {
	tag      cbasn1.Tag
	children []Node
}

// Sequence returns a SEQUENCE node owning children in order.
func Sequence(children ...Node) Node {
	return constructedNode{tag: cbasn1.SEQUENCE, children: children}
}

// Set returns a SET node owning children in order. Children are emitted in
// the order given; callers are responsible for DER SET OF ordering when more
// than one child is present.
func Set(children ...Node) Node {
	return constructedNode{tag: cbasn1.SET, children: children}
}

// ImplicitConstructed returns a context-specific constructed node [tag]
// whose content is the concatenated encodings of children. Used for
// IMPLICIT tagging of constructed types, where the original tag is replaced.
func ImplicitConstructed(tag uint8, children ...Node) Node {
	return constructedNode{
		tag:      cbasn1.Tag(tag).Constructed().ContextSpecific(),
		children: children,
	}
}

func (n constructedNode) Encode() ([]byte, error) {
	encoded, err := encodeAll(n.children)
	if err != nil {
		return nil, err
	}
	return build(func(b *cryptobyte.Builder) {
		b.AddASN1(n.tag, func(c *cryptobyte.Builder) {
			for _, e := range encoded {
				c.AddBytes(e)
			}
		})
	})
}

type explicitNode struct {
	tag   uint8
	child Node
}

// Explicit returns an EXPLICIT context-specific tagged node [tag] wrapping
// the complete encoding of child.
func Explicit(tag uint8, child Node) Node { return explicitNode{tag: tag, child: child} }

func (n explicitNode) Encode() ([]byte, error) {
	if n.child == nil {
		return nil, errors.New("der: explicit tag has no child")
	}
	inner, err := n.child.Encode()
	if err != nil {
		return nil, err
	}
	return build(func(b *cryptobyte.Builder) {
		b.AddASN1(cbasn1.Tag(n.tag).Constructed().ContextSpecific(), func(c *cryptobyte.Builder) {
			c.AddBytes(inner)
		})
	})
}

type implicitPrimitiveNode struct {
	tag     uint8
	content []byte
}

// ImplicitPrimitive returns a context-specific primitive node [tag] whose
// content octets are given directly. Used for IMPLICIT tagging of primitive
// types such as the IA5String alternatives of GeneralName.
func ImplicitPrimitive(tag uint8, content []byte) Node {
	return implicitPrimitiveNode{tag: tag, content: content}
}

func (n implicitPrimitiveNode) Encode() ([]byte, error) {
	return build(func(b *cryptobyte.Builder) {
		b.AddASN1(cbasn1.Tag(n.tag).ContextSpecific(), func(c *cryptobyte.Builder) {
			c.AddBytes(n.content)
		})
	})
}

type rawNode struct{ der []byte }

// Raw returns a node that emits der verbatim. The bytes must already be a
// complete DER encoding; no checking is performed.
func Raw(der []byte) Node { return rawNode{der: der} }

func (n rawNode) Encode() ([]byte, error) {
	if len(n.der) == 0 {
		return nil, errors.New("der: raw node is empty")
	}
	return n.der, nil
}
