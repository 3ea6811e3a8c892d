package cryptox

import (
	"bytes"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateOTPRange(t *testing.T) {
	seen := make(map[string]struct{})

	for range 500 {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)

		seen[code] = struct{}{}
	}

	// 500 draws from 900k values colliding down to a handful would mean a
	// broken source.
	require.Greater(t, len(seen), 490)
}

func TestGenerateOTPFromLowerBound(t *testing.T) {
	// All-zero entropy maps to the smallest code.
	code, err := GenerateOTPFrom(bytes.NewReader(make([]byte, 64)))
	require.NoError(t, err)
	require.Equal(t, "100000", code)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestGenerateOTPFromError(t *testing.T) {
	_, err := GenerateOTPFrom(failingReader{})
	require.Error(t, err)
}

func TestEqualOTP(t *testing.T) {
	require.True(t, EqualOTP("123456", "123456"))
	require.False(t, EqualOTP("123456", "123457"))
	require.False(t, EqualOTP("123456", "12345"))
	require.False(t, EqualOTP("", ""))
	require.False(t, EqualOTP("123456", ""))
}
