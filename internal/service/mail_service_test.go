package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneratePasswordResetHTML(t *testing.T) {
	html, err := GeneratePasswordResetHTML(PasswordResetMailData{
		Email:         "user@example.com",
		ResetURL:      "https://shop.example.com/reset-password/uid/token",
		ExpiryMinutes: 15,
	})

	require.NoError(t, err)
	require.True(t, strings.Contains(html, "https://shop.example.com/reset-password/uid/token"))
	require.True(t, strings.Contains(html, "15"))
}
