package x509gen

import (
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNamePreservesOrder(t *testing.T) {
	name, err := ParseName("/C=US/O=Test Org/CN=example.com")
	require.NoError(t, err)
	require.Len(t, name.RDNs, 3)

	assert.Equal(t, "C", name.RDNs[0][0].Type)
	assert.Equal(t, "US", name.RDNs[0][0].Value)
	assert.Equal(t, "O", name.RDNs[1][0].Type)
	assert.Equal(t, "Test Org", name.RDNs[1][0].Value)
	assert.Equal(t, "CN", name.RDNs[2][0].Type)
	assert.Equal(t, "example.com", name.RDNs[2][0].Value)

	// Round-trip: re-deriving the segment list yields the original order.
	assert.Equal(t, "/C=US/O=Test Org/CN=example.com", name.String())
}

func TestParseNameMalformed(t *testing.T) {
	for _, dn := range []string{"", "/", "/C", "/C=", "/=US", "/C=US/O"} {
		_, err := ParseName(dn)
		require.Error(t, err, "dn %q", dn)
		assert.True(t, errors.Is(err, ErrMalformedInput), "dn %q got %v", dn, err)
	}
}

func TestAttributeValueStringKinds(t *testing.T) {
	// Country values are PrintableString (tag 0x13); everything else
	// defaults to UTF8String (tag 0x0C).
	country, err := AttributeTypeAndValue{Type: "C", Value: "US"}.node()
	require.NoError(t, err)
	enc, err := country.Encode()
	require.NoError(t, err)
	assert.Equal(t, "300906035504061302"+"5553", hex.EncodeToString(enc))

	cn, err := AttributeTypeAndValue{Type: "CN", Value: "b"}.node()
	require.NoError(t, err)
	enc, err = cn.Encode()
	require.NoError(t, err)
	assert.Equal(t, "300806035504030c0162", hex.EncodeToString(enc))
}

func TestAttributeValueIncomplete(t *testing.T) {
	_, err := AttributeTypeAndValue{Type: "C"}.node()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))

	_, err = AttributeTypeAndValue{Value: "US"}.node()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))
}

func TestNameEncodesAsRDNSequence(t *testing.T) {
	name, err := ParseName("/C=US/O=a")
	require.NoError(t, err)
	n, err := name.node()
	require.NoError(t, err)
	enc, err := n.Encode()
	require.NoError(t, err)

	var rdns pkix.RDNSequence
	rest, err := asn1.Unmarshal(enc, &rdns)
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Len(t, rdns, 2)

	assert.True(t, rdns[0][0].Type.Equal(asn1.ObjectIdentifier{2, 5, 4, 6}))
	assert.Equal(t, "US", rdns[0][0].Value)
	assert.True(t, rdns[1][0].Type.Equal(asn1.ObjectIdentifier{2, 5, 4, 10}))
	assert.Equal(t, "a", rdns[1][0].Value)
}

func TestEmptyRDNFails(t *testing.T) {
	_, err := RDN{}.node()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))
}
