package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP_RangeAndFormat(t *testing.T) {
	for i := 0; i < 500; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestOTPMatches(t *testing.T) {
	h := HashOTP("482913")
	assert.Len(t, h, 64)
	assert.True(t, OTPMatches("482913", h))
	assert.False(t, OTPMatches("482914", h))
	assert.False(t, OTPMatches(" 482913", h), "no trimming")
	assert.False(t, OTPMatches("", h))
}
