package x509gen

import (
	"time"

	"github.com/mdean75/x509gen/internal/der"
)

// TimeKind selects the ASN.1 time type used to encode a Time.
type TimeKind int

const (
	// UTCTimeKind encodes the value as a UTCTime (YYMMDDHHMMSSZ). This is
	// the default and covers the years 1950 through 2049.
	UTCTimeKind TimeKind = iota
	// GeneralizedTimeKind encodes the value as a GeneralizedTime
	// (YYYYMMDDHHMMSSZ).
	GeneralizedTimeKind
)

// Time is a certificate or CRL time value: a raw lexical string plus the
// kind discriminator choosing between UTCTime and GeneralizedTime. The value
// must already be in the chosen type's lexical form; it is emitted verbatim.
type Time struct {
	// Kind selects the encoding. The zero value is UTCTime.
	Kind TimeKind
	// Value is the formatted time string, such as "130504235959Z" for a
	// UTCTime or "20500504235959Z" for a GeneralizedTime.
	Value string
}

// NewTime returns a UTCTime value.
func NewTime(value string) Time {
	return Time{Kind: UTCTimeKind, Value: value}
}

// NewGeneralizedTime returns a GeneralizedTime value.
func NewGeneralizedTime(value string) Time {
	return Time{Kind: GeneralizedTimeKind, Value: value}
}

// TimeFromStdTime converts a time.Time following the X.509 convention:
// years 1950 through 2049 use UTCTime, everything else uses GeneralizedTime.
// The value is rendered in UTC with one-second precision.
func TimeFromStdTime(t time.Time) Time {
	t = t.UTC()
	if y := t.Year(); y >= 1950 && y < 2050 {
		return Time{Kind: UTCTimeKind, Value: t.Format("060102150405Z")}
	}
	return Time{Kind: GeneralizedTimeKind, Value: t.Format("20060102150405Z")}
}

func (t Time) isSet() bool { return t.Value != "" }

func (t Time) node() (der.Node, error) {
	if t.Value == "" {
		return nil, newError(CodeMissingField, "time value is not set")
	}
	switch t.Kind {
	case UTCTimeKind:
		return der.UTCTime(t.Value), nil
	case GeneralizedTimeKind:
		return der.GeneralizedTime(t.Value), nil
	default:
		return nil, newError(CodeUnsupportedVariant, "unsupported time kind")
	}
}
