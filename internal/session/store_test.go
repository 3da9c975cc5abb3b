package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrigest/internal/types"
)

func testUser() types.User {
	return types.User{ID: 1, Username: "moussa", FirstName: "Moussa", LastName: "Diop"}
}

func TestStoreLoginPersistsAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := NewStoreAt(path)
	assert.False(t, s.Authenticated())

	require.NoError(t, s.Login("tok-123", testUser()))
	assert.True(t, s.Authenticated())
	assert.Equal(t, "tok-123", s.Token())

	// A second store over the same file picks the session up.
	s2 := NewStoreAt(path)
	assert.True(t, s2.Authenticated())
	assert.Equal(t, "tok-123", s2.Token())
	user, ok := s2.User()
	require.True(t, ok)
	assert.Equal(t, "moussa", user.Username)
}

func TestStoreClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewStoreAt(path)
	require.NoError(t, s.Login("tok", testUser()))

	require.NoError(t, s.Clear())
	assert.False(t, s.Authenticated())
	assert.Equal(t, "", s.Token())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "session file must be gone")

	// Clearing an already-anonymous store is not an error.
	require.NoError(t, s.Clear())
}

func TestStoreUpdateUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewStoreAt(path)
	require.NoError(t, s.Login("tok", testUser()))

	updated := testUser()
	updated.ZoneGeographique = "Thiès"
	require.NoError(t, s.UpdateUser(updated))

	// Token survives, snapshot is replaced, disk mirrors memory.
	assert.Equal(t, "tok", s.Token())
	s2 := NewStoreAt(path)
	user, ok := s2.User()
	require.True(t, ok)
	assert.Equal(t, "Thiès", user.ZoneGeographique)
}

func TestStoreUpdateUserWhenAnonymous(t *testing.T) {
	s := NewStoreAt(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, s.UpdateUser(testUser()), "anonymous update is a no-op")
	assert.False(t, s.Authenticated())
}

func TestStoreIgnoresCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	s := NewStoreAt(path)
	assert.False(t, s.Authenticated(), "corrupt files mean anonymous, not crash")
}

func TestStoreFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s := NewStoreAt(path)
	require.NoError(t, s.Login("tok", testUser()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "token file must not be world-readable")
}
