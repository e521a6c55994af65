package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresWordSource(t *testing.T) {
	ctx := context.Background()

	t.Run("FetchWords", func(t *testing.T) {
		words, err := wordSource.FetchWords(ctx, "animals", 3)
		require.NoError(t, err)
		require.Len(t, words, 3)

		seen := map[string]bool{}
		for _, w := range words {
			assert.NotEmpty(t, w)
			assert.False(t, seen[w], "words must be distinct")
			seen[w] = true
		}
	})

	t.Run("FetchWords_UnknownTheme", func(t *testing.T) {
		words, err := wordSource.FetchWords(ctx, "nonsense", 3)
		assert.NoError(t, err)
		assert.Empty(t, words)
	})

	t.Run("FetchWords_PoolSmallerThanCount", func(t *testing.T) {
		words, err := wordSource.FetchWords(ctx, "animals", 1000)
		assert.NoError(t, err)
		assert.Len(t, words, 10, "the seeded animals pool")
	})
}
