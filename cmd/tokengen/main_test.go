//go:build unit

package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"property-revenue-sync/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	t.Setenv("JWT_SECRET", "tokengen-secret")
	t.Setenv("JWT_DURATION", "1h")

	t.Run("prints a token the server accepts", func(t *testing.T) {
		var out bytes.Buffer
		cmd := rootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--subject", "ops@example.com", "--ttl", "10m"})

		require.NoError(t, cmd.Execute())

		claims, err := jwt.NewService("tokengen-secret", time.Hour).ValidateToken(strings.TrimSpace(out.String()))
		require.NoError(t, err)
		assert.Equal(t, "ops@example.com", claims.Operator())
		assert.Equal(t, "operator", claims.Role)
		assert.WithinDuration(t, time.Now().Add(10*time.Minute), claims.ExpiresAt.Time, time.Minute)
	})

	t.Run("subject is required", func(t *testing.T) {
		cmd := rootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{})

		assert.Error(t, cmd.Execute())
	})
}
