package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewClient_MissingAPIKey(t *testing.T) {
	t.Setenv(APIKeyEnvVar, "")

	client, err := NewClient(context.Background())
	require.Error(t, err)
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewClient_APIKeyFromEnv(t *testing.T) {
	t.Setenv(APIKeyEnvVar, "test-key")

	client, err := NewClient(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewClient_WithAPIKeyOverride(t *testing.T) {
	t.Setenv(APIKeyEnvVar, "")

	client, err := NewClient(context.Background(), WithAPIKey("override-key"))
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestIsPermanent(t *testing.T) {
	assert.False(t, IsPermanent(nil))
	assert.False(t, IsPermanent(errors.New("connection reset")))
	assert.True(t, IsPermanent(ErrMissingAPIKey))

	assert.True(t, IsPermanent(genai.APIError{Code: 400, Message: "invalid argument"}))
	assert.True(t, IsPermanent(genai.APIError{Code: 404, Message: "model not found"}))
	assert.False(t, IsPermanent(genai.APIError{Code: 429, Message: "quota exceeded"}))
	assert.False(t, IsPermanent(genai.APIError{Code: 500, Message: "internal"}))
}
