package x509gen

import (
	"encoding/asn1"
	"fmt"
	"strconv"
	"strings"

	"github.com/mdean75/x509gen/internal/der"
)

// Distinguished-name attribute type OIDs (X.520).
var (
	// OIDAttributeCountry identifies the countryName attribute type (C).
	OIDAttributeCountry = asn1.ObjectIdentifier{2, 5, 4, 6}

	// OIDAttributeCommonName identifies the commonName attribute type (CN).
	OIDAttributeCommonName = asn1.ObjectIdentifier{2, 5, 4, 3}

	// OIDAttributeLocality identifies the localityName attribute type (L).
	OIDAttributeLocality = asn1.ObjectIdentifier{2, 5, 4, 7}

	// OIDAttributeProvince identifies the stateOrProvinceName attribute type (ST).
	OIDAttributeProvince = asn1.ObjectIdentifier{2, 5, 4, 8}

	// OIDAttributeOrganization identifies the organizationName attribute type (O).
	OIDAttributeOrganization = asn1.ObjectIdentifier{2, 5, 4, 10}

	// OIDAttributeOrganizationalUnit identifies the organizationalUnitName
	// attribute type (OU).
	OIDAttributeOrganizationalUnit = asn1.ObjectIdentifier{2, 5, 4, 11}
)

// Signature and key algorithm OIDs (PKCS #1).
var (
	// OIDRSAEncryption identifies the rsaEncryption key algorithm.
	OIDRSAEncryption = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}

	// OIDMD5WithRSA identifies RSA PKCS1v15 with MD5. Present for
	// compatibility with legacy profiles only.
	OIDMD5WithRSA = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 4}

	// OIDSHA1WithRSA identifies RSA PKCS1v15 with SHA-1.
	OIDSHA1WithRSA = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 5}

	// OIDSHA224WithRSA identifies RSA PKCS1v15 with SHA-224.
	OIDSHA224WithRSA = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 14}

	// OIDSHA256WithRSA identifies RSA PKCS1v15 with SHA-256.
	OIDSHA256WithRSA = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 11}

	// OIDSHA384WithRSA identifies RSA PKCS1v15 with SHA-384.
	OIDSHA384WithRSA = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 12}

	// OIDSHA512WithRSA identifies RSA PKCS1v15 with SHA-512.
	OIDSHA512WithRSA = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 13}
)

// Certificate extension OIDs (RFC 5280, section 4.2.1).
var (
	// OIDExtensionSubjectKeyID identifies the subjectKeyIdentifier extension.
	OIDExtensionSubjectKeyID = asn1.ObjectIdentifier{2, 5, 29, 14}

	// OIDExtensionKeyUsage identifies the keyUsage extension.
	OIDExtensionKeyUsage = asn1.ObjectIdentifier{2, 5, 29, 15}

	// OIDExtensionSubjectAltName identifies the subjectAltName extension.
	OIDExtensionSubjectAltName = asn1.ObjectIdentifier{2, 5, 29, 17}

	// OIDExtensionBasicConstraints identifies the basicConstraints extension.
	OIDExtensionBasicConstraints = asn1.ObjectIdentifier{2, 5, 29, 19}

	// OIDExtensionCRLDistributionPoints identifies the cRLDistributionPoints
	// extension.
	OIDExtensionCRLDistributionPoints = asn1.ObjectIdentifier{2, 5, 29, 31}

	// OIDExtensionAuthorityKeyID identifies the authorityKeyIdentifier extension.
	OIDExtensionAuthorityKeyID = asn1.ObjectIdentifier{2, 5, 29, 35}

	// OIDExtensionExtKeyUsage identifies the extKeyUsage extension.
	OIDExtensionExtKeyUsage = asn1.ObjectIdentifier{2, 5, 29, 37}
)

// Extended key usage purpose OIDs (RFC 5280, section 4.2.1.12).
var (
	// OIDAnyExtendedKeyUsage matches any key purpose.
	OIDAnyExtendedKeyUsage = asn1.ObjectIdentifier{2, 5, 29, 37, 0}

	// OIDServerAuth identifies TLS server authentication.
	OIDServerAuth = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 1}

	// OIDClientAuth identifies TLS client authentication.
	OIDClientAuth = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 2}

	// OIDCodeSigning identifies code signing.
	OIDCodeSigning = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 3}

	// OIDEmailProtection identifies email protection (S/MIME).
	OIDEmailProtection = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 4}

	// OIDTimeStamping identifies trusted timestamping.
	OIDTimeStamping = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 8}

	// OIDOCSPSigning identifies OCSP response signing.
	OIDOCSPSigning = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 9}
)

// attributeTypeOIDs maps distinguished-name short type names to their OIDs.
var attributeTypeOIDs = map[string]asn1.ObjectIdentifier{
	"C":  OIDAttributeCountry,
	"CN": OIDAttributeCommonName,
	"L":  OIDAttributeLocality,
	"ST": OIDAttributeProvince,
	"O":  OIDAttributeOrganization,
	"OU": OIDAttributeOrganizationalUnit,
}

// symbolicOIDs maps symbolic algorithm, extension, and key purpose names to
// their OIDs.
var symbolicOIDs = map[string]asn1.ObjectIdentifier{
	"rsaEncryption": OIDRSAEncryption,
	"MD5withRSA":    OIDMD5WithRSA,
	"SHA1withRSA":   OIDSHA1WithRSA,
	"SHA224withRSA": OIDSHA224WithRSA,
	"SHA256withRSA": OIDSHA256WithRSA,
	"SHA384withRSA": OIDSHA384WithRSA,
	"SHA512withRSA": OIDSHA512WithRSA,

	"subjectKeyIdentifier":   OIDExtensionSubjectKeyID,
	"keyUsage":               OIDExtensionKeyUsage,
	"subjectAltName":         OIDExtensionSubjectAltName,
	"basicConstraints":       OIDExtensionBasicConstraints,
	"cRLDistributionPoints":  OIDExtensionCRLDistributionPoints,
	"authorityKeyIdentifier": OIDExtensionAuthorityKeyID,
	"extKeyUsage":            OIDExtensionExtKeyUsage,

	"anyExtendedKeyUsage": OIDAnyExtendedKeyUsage,
	"serverAuth":          OIDServerAuth,
	"clientAuth":          OIDClientAuth,
	"codeSigning":         OIDCodeSigning,
	"emailProtection":     OIDEmailProtection,
	"timeStamping":        OIDTimeStamping,
	"ocspSigning":         OIDOCSPSigning,
}

// Node caches, populated once at package init. Lookups after init return the
// identical cached node for a given name, so callers never pay the encoding
// cost twice and may compare nodes by identity. The maps are never mutated
// after init, which makes concurrent lookups safe without locking.
var (
	attributeTypeNodes = make(map[string]der.Node, len(attributeTypeOIDs))
	symbolicNodes      = make(map[string]der.Node, len(symbolicOIDs))
)

func init() {
	for name, oid := range attributeTypeOIDs {
		attributeTypeNodes[name] = der.ObjectIdentifier(oid)
	}
	for name, oid := range symbolicOIDs {
		symbolicNodes[name] = der.ObjectIdentifier(oid)
	}
}

// attributeTypeNode returns the cached OID node for a distinguished-name
// short type name such as "C" or "CN".
func attributeTypeNode(shortName string) (der.Node, error) {
	n, ok := attributeTypeNodes[shortName]
	if !ok {
		return nil, newError(CodeUnknownIdentifier,
			fmt.Sprintf("unknown attribute type %q", shortName))
	}
	return n, nil
}

// symbolicNode returns the cached OID node for a symbolic algorithm,
// extension, or key purpose name such as "SHA256withRSA" or "serverAuth".
func symbolicNode(name string) (der.Node, error) {
	n, ok := symbolicNodes[name]
	if !ok {
		return nil, newError(CodeUnknownIdentifier,
			fmt.Sprintf("unknown identifier %q", name))
	}
	return n, nil
}

// oidNodeFor resolves s as either a symbolic registry name or a
// dotted-decimal OID such as "1.3.6.1.5.5.7.3.1". Dotted forms are parsed on
// each call; only named lookups are cached.
func oidNodeFor(s string) (der.Node, error) {
	if n, ok := symbolicNodes[s]; ok {
		return n, nil
	}
	if !strings.ContainsRune(s, '.') {
		return nil, newError(CodeUnknownIdentifier,
			fmt.Sprintf("unknown identifier %q", s))
	}
	oid, err := parseDottedOID(s)
	if err != nil {
		return nil, err
	}
	return der.ObjectIdentifier(oid), nil
}

// parseDottedOID parses a dotted-decimal OID string.
func parseDottedOID(s string) (asn1.ObjectIdentifier, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return nil, newError(CodeMalformedInput, fmt.Sprintf("malformed OID %q", s))
	}
	oid := make(asn1.ObjectIdentifier, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return nil, newError(CodeMalformedInput, fmt.Sprintf("malformed OID %q", s))
		}
		oid[i] = v
	}
	return oid, nil
}
