package x509gen

import (
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeEncode(t *testing.T) {
	n, err := NewTime("130504235959Z").node()
	require.NoError(t, err)
	enc, err := n.Encode()
	require.NoError(t, err)
	assert.Equal(t, "170d3133303530343233353935395a", hex.EncodeToString(enc))

	n, err = NewGeneralizedTime("20500504235959Z").node()
	require.NoError(t, err)
	enc, err = n.Encode()
	require.NoError(t, err)
	assert.Equal(t, "180f32303530303530343233353935395a", hex.EncodeToString(enc))
}

func TestTimeUnset(t *testing.T) {
	_, err := Time{}.node()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))
}

func TestTimeFromStdTime(t *testing.T) {
	// 1950-2049 uses UTCTime, everything else GeneralizedTime.
	in := TimeFromStdTime(time.Date(2013, 5, 4, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, UTCTimeKind, in.Kind)
	assert.Equal(t, "130504235959Z", in.Value)

	out := TimeFromStdTime(time.Date(2050, 5, 4, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, GeneralizedTimeKind, out.Kind)
	assert.Equal(t, "20500504235959Z", out.Value)

	early := TimeFromStdTime(time.Date(1949, 12, 31, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, GeneralizedTimeKind, early.Kind)
	assert.Equal(t, "19491231235959Z", early.Value)
}
