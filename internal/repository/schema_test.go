package repository

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusq/campusq-backend/internal/model"
)

// Create relies on the database column defaults for the placeholder images,
// so the migration must carry the same URLs as the model constants.
func TestUserMigrationPlaceholderDefaults(t *testing.T) {
	sql, err := os.ReadFile("../../migrations/000001_create_users.up.sql")
	require.NoError(t, err)

	assert.Contains(t, string(sql), model.DefaultProfilePictureURL)
	assert.Contains(t, string(sql), model.DefaultCoverPhotoURL)
}
