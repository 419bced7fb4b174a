package x509gen

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneralNameTags(t *testing.T) {
	tests := []struct {
		name string
		gn   GeneralName
		want string
	}{
		{"rfc822", GeneralName{RFC822: "a@b"}, "8103614062"},
		{"dns", GeneralName{DNS: "a.b"}, "8203612e62"},
		{"uri", GeneralName{URI: "http://x"}, "8608687474703a2f2f78"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n, err := tc.gn.node()
			require.NoError(t, err)
			enc, err := n.Encode()
			require.NoError(t, err)
			assert.Equal(t, tc.want, hex.EncodeToString(enc))
		})
	}
}

func TestGeneralNameVariantErrors(t *testing.T) {
	// No alternative selected.
	_, err := GeneralName{}.node()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedVariant))

	// More than one alternative is rejected rather than silently resolved.
	_, err = GeneralName{RFC822: "a@b", URI: "http://x"}.node()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))

	// IA5String alternatives only hold ASCII.
	_, err = GeneralName{DNS: "caf\xc3\xa9.example"}.node()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))
}

func TestGeneralNamesRequiresOne(t *testing.T) {
	_, err := GeneralNames{}.node()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))
}

func TestDistributionPointName(t *testing.T) {
	dpn := DistributionPointName{FullName: GeneralNames{{URI: "http://x"}}}
	n, err := dpn.node()
	require.NoError(t, err)
	enc, err := n.Encode()
	require.NoError(t, err)
	// IMPLICIT [0] constructed replacing the GeneralNames SEQUENCE tag.
	assert.Equal(t, "a00a8608687474703a2f2f78", hex.EncodeToString(enc))

	_, err = DistributionPointName{}.node()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedVariant))
}

func TestDistributionPoint(t *testing.T) {
	// Without a name the SEQUENCE is empty.
	n, err := DistributionPoint{}.node()
	require.NoError(t, err)
	enc, err := n.Encode()
	require.NoError(t, err)
	assert.Equal(t, "3000", hex.EncodeToString(enc))

	dp := DistributionPoint{Name: &DistributionPointName{FullName: GeneralNames{{URI: "http://x"}}}}
	n, err = dp.node()
	require.NoError(t, err)
	enc, err = n.Encode()
	require.NoError(t, err)
	// SEQUENCE { [0] EXPLICIT { [0] IMPLICIT GeneralNames } }
	assert.Equal(t, "300ea00ca00a8608687474703a2f2f78", hex.EncodeToString(enc))
}
