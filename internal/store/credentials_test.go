package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServiceAccountKey(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		_, err := parseServiceAccountKey(nil)
		assert.ErrorIs(t, err, ErrMissingCredential)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := parseServiceAccountKey([]byte("not json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse")
	})

	t.Run("missing project_id", func(t *testing.T) {
		_, err := parseServiceAccountKey([]byte(`{"type":"service_account"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "project_id")
	})

	t.Run("valid key", func(t *testing.T) {
		projectID, err := parseServiceAccountKey(
			[]byte(`{"type":"service_account","project_id":"fun-dead-trader"}`))
		require.NoError(t, err)
		assert.Equal(t, "fun-dead-trader", projectID)
	})
}

func TestServiceAccountSecretProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("unconfigured secret reports missing credential", func(t *testing.T) {
		client, err := ServiceAccountSecret{}.NewClient(ctx, "fun-dead-trader")
		assert.Nil(t, client)
		assert.ErrorIs(t, err, ErrMissingCredential)
	})

	t.Run("key without usable material fails before opening a client", func(t *testing.T) {
		client, err := ServiceAccountSecret{
			JSON: []byte(`{"project_id":"fun-dead-trader"}`),
		}.NewClient(ctx, "fun-dead-trader")
		assert.Nil(t, client)
		require.Error(t, err)
	})
}
