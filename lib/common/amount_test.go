package common

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"quadrafund.io/quadra/lib/errors"
)

func TestAmountAddSub(t *testing.T) {
	a := NewAmount(100)
	b := NewAmount(42)

	sum, err := a.Add(b)
	require.NoError(t, err)
	require.True(t, sum.Equal(NewAmount(142)))

	diff, err := a.Sub(b)
	require.NoError(t, err)
	require.True(t, diff.Equal(NewAmount(58)))
}

func TestAmountSubUnderflow(t *testing.T) {
	a := NewAmount(1)
	_, err := a.Sub(NewAmount(2))
	require.Error(t, err)
	require.True(t, errors.AmountUnderZero.Equal(err))
}

func TestAmountAddOverflow(t *testing.T) {
	max, err := NewAmountFromBig(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)))
	require.NoError(t, err)

	_, err = max.Add(NewAmount(1))
	require.Error(t, err)
	require.True(t, errors.MaximumAmountReached.Equal(err))
}

func TestAmountBytesRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 100, 1<<63 - 1} {
		a := NewAmount(v)

		b := a.Bytes()
		require.Equal(t, AmountByteLength, len(b))

		parsed, err := AmountFromBytes(b)
		require.NoError(t, err)
		require.True(t, a.Equal(parsed))
	}
}

func TestAmountFromBytesBadLength(t *testing.T) {
	_, err := AmountFromBytes(make([]byte, 31))
	require.Error(t, err)

	_, err = AmountFromBytes(make([]byte, 33))
	require.Error(t, err)
}

func TestAmountZeroValue(t *testing.T) {
	var a Amount
	require.True(t, a.IsZero())
	require.Equal(t, "0", a.String())

	sum, err := a.Add(NewAmount(3))
	require.NoError(t, err)
	require.True(t, sum.Equal(NewAmount(3)))
}

func TestAmountJSON(t *testing.T) {
	a := MustAmountFromString("340282366920938463463374607431768211456") // 2^128

	encoded, err := json.Marshal(a)
	require.NoError(t, err)
	require.Equal(t, `"340282366920938463463374607431768211456"`, string(encoded))

	var decoded Amount
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	require.True(t, a.Equal(decoded))
}

func TestAmountFromStringInvalid(t *testing.T) {
	for _, s := range []string{"", "-1", "showme", "1.5"} {
		_, err := AmountFromString(s)
		require.Error(t, err)
	}
}
