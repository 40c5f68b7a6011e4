package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewTokenStore(path)

	t.Run(
		"LoadMissingFile", func(t *testing.T) {
			sess, err := store.Load()
			assert.NoError(t, err)
			assert.Equal(t, Session{}, sess)
		},
	)

	t.Run(
		"SaveAndLoad", func(t *testing.T) {
			saved := Session{Access: "a", Refresh: "r", DeviceID: "d"}
			require.NoError(t, store.Save(saved))

			sess, err := store.Load()
			assert.NoError(t, err)
			assert.Equal(t, saved, sess)
		},
	)

	t.Run(
		"FilePermissions", func(t *testing.T) {
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
		},
	)

	t.Run(
		"Clear", func(t *testing.T) {
			require.NoError(t, store.Clear())

			sess, err := store.Load()
			assert.NoError(t, err)
			assert.Equal(t, Session{}, sess)

			// clearing twice is fine
			assert.NoError(t, store.Clear())
		},
	)
}
