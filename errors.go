/*
Package x509gen builds, assembles, and signs the ASN.1 object graphs for
X.509 certificates and certificate revocation lists.

Callers populate a TBSCertificate or TBSCertList field by field, attach
extensions or revoked-entry records, wrap the body in a Certificate or CRL
together with an RSA private key, and call Sign. Signing serializes the body,
computes an RSA PKCS#1 v1.5 signature over it, and returns an immutable
signed artifact exposing DER, hex, and PEM renderings. The package only
emits; it never parses or validates third-party certificates.
*/
package x509gen

import "errors"

// ErrorCode identifies the category of an x509gen error.
type ErrorCode int

const (
	// CodeMissingField indicates encoding was attempted before a required
	// field (validity, algorithm, issuer, public key, ...) was set.
	CodeMissingField ErrorCode = iota
	// CodeUnknownIdentifier indicates a symbolic OID, algorithm, or key
	// purpose name that is not in the registry.
	CodeUnknownIdentifier
	// CodeMalformedInput indicates unparseable caller input, such as a
	// distinguished-name segment without '=', an unsupported PEM envelope,
	// an unsupported key format, or an ambiguous GeneralName.
	CodeMalformedInput
	// CodeUnsupportedVariant indicates a CHOICE-typed value with no usable
	// alternative, such as a GeneralName with none of rfc822, dns, or uri set.
	CodeUnsupportedVariant
	// CodeEncode indicates a failure in the underlying DER node encoder.
	CodeEncode
	// CodeSign indicates the private key operation itself failed.
	CodeSign
)

// Error is the error type returned by all x509gen operations. It implements
// the error interface and supports chain inspection via errors.Is and
// errors.As.
type Error struct {
	// Code identifies the category of this error.
	Code ErrorCode
	// Message is a human-readable description of the error.
	Message string
	// Cause is the underlying error that triggered this error, if any.
	Cause error
}

// Error returns a string representation of the error, including the cause if
// present.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause of the error, enabling errors.Is and
// errors.As to traverse the error chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error by comparing error codes.
// This enables errors.Is(err, x509gen.ErrMissingField) to match any *Error
// with the same code, regardless of message or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for use with errors.Is. Each sentinel represents an error
// category; errors returned by this package carry descriptive messages and
// causes, and sentinels are used only for category matching.
var (
	// ErrMissingField is returned when encoding is attempted on a structure
	// with an unset required field.
	ErrMissingField = &Error{Code: CodeMissingField}

	// ErrUnknownIdentifier is returned for symbolic names absent from the
	// OID registry.
	ErrUnknownIdentifier = &Error{Code: CodeUnknownIdentifier}

	// ErrMalformedInput is returned for unparseable caller input.
	ErrMalformedInput = &Error{Code: CodeMalformedInput}

	// ErrUnsupportedVariant is returned for CHOICE values with no usable
	// alternative selected.
	ErrUnsupportedVariant = &Error{Code: CodeUnsupportedVariant}

	// ErrEncode is returned when the DER node encoder rejects a value.
	ErrEncode = &Error{Code: CodeEncode}

	// ErrSign is returned when the private key signing operation fails.
	ErrSign = &Error{Code: CodeSign}
)

// newError creates a new Error with the given code and message.
func newError(code ErrorCode, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// wrapError creates a new Error with the given code and message, wrapping cause.
func wrapError(code ErrorCode, msg string, cause error) *Error {
	return &Error{Code: code, Message: msg, Cause: cause}
}

// joinErrors returns a joined error from the provided slice, or nil if empty.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
