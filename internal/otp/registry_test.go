package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sevasetu/seva-backend/internal/models"
)

func TestMemoryRegistry(t *testing.T) {
	ctx := context.Background()
	registry := NewMemoryRegistry()

	_, err := registry.Get(ctx, "9876543210")
	require.ErrorIs(t, err, ErrChallengeNotFound)

	challenge := models.OTPChallenge{
		Contact:  "9876543210",
		Code:     "123456",
		IssuedAt: time.Now(),
	}
	require.NoError(t, registry.Put(ctx, "9876543210", challenge, 10*time.Minute))

	got, err := registry.Get(ctx, "9876543210")
	require.NoError(t, err)
	require.Equal(t, "123456", got.Code)
	require.Equal(t, 0, got.Attempts)

	got.Attempts = 2
	require.NoError(t, registry.Update(ctx, "9876543210", *got))

	got, err = registry.Get(ctx, "9876543210")
	require.NoError(t, err)
	require.Equal(t, 2, got.Attempts)

	require.NoError(t, registry.Delete(ctx, "9876543210"))
	_, err = registry.Get(ctx, "9876543210")
	require.ErrorIs(t, err, ErrChallengeNotFound)
}

func TestMemoryRegistry_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	registry := NewMemoryRegistry()

	first := models.OTPChallenge{Contact: "9876543210", Code: "111111", Attempts: 2}
	require.NoError(t, registry.Put(ctx, "9876543210", first, 10*time.Minute))

	second := models.OTPChallenge{Contact: "9876543210", Code: "222222"}
	require.NoError(t, registry.Put(ctx, "9876543210", second, 10*time.Minute))

	got, err := registry.Get(ctx, "9876543210")
	require.NoError(t, err)
	require.Equal(t, "222222", got.Code)
	require.Equal(t, 0, got.Attempts)
}

func TestMemoryRegistry_UpdateMissingChallenge(t *testing.T) {
	registry := NewMemoryRegistry()

	err := registry.Update(context.Background(), "9876543210", models.OTPChallenge{Code: "123456"})
	require.ErrorIs(t, err, ErrChallengeNotFound)
}

func TestMemoryRegistry_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	registry := NewMemoryRegistry()

	require.NoError(t, registry.Put(ctx, "9876543210", models.OTPChallenge{Code: "123456"}, 10*time.Minute))

	got, err := registry.Get(ctx, "9876543210")
	require.NoError(t, err)
	got.Attempts = 99

	fresh, err := registry.Get(ctx, "9876543210")
	require.NoError(t, err)
	require.Equal(t, 0, fresh.Attempts)
}
