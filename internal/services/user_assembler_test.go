package services

import (
	"context"
	"testing"
	"time"

	"github.com/growcally/backend/internal/apperrors"
	"github.com/growcally/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleUserByID(t *testing.T) {
	store := newMemStore()
	users, _, likes, _, _, _, _ := newTestServices(store)

	user := store.addUser("alice")
	other := store.addUser("bob")
	mine := store.addPost(user.ID, time.Now())
	theirs := store.addPost(other.ID, time.Now())

	_, err := likes.Like(context.Background(), theirs.ID, user.ID)
	require.NoError(t, err)

	assembled, err := users.AssembleUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, assembled.ID)
	assert.Equal(t, user.Email, assembled.Email)
	assert.Equal(t, user.ID, assembled.Account.OwnerID)
	assert.Equal(t, []string{mine.ID}, assembled.PostIDs)
	assert.Equal(t, []string{theirs.ID}, assembled.LikedPostIDs)
	assert.Nil(t, assembled.ProfileImage)
}

func TestAssembleUserResolvesProfileImageURL(t *testing.T) {
	store := newMemStore()
	users, _, _, _, _, _, _ := newTestServices(store)

	user := store.addUser("alice")
	store.profileImages[user.ID] = models.ProfileImage{
		ID:       "img-1",
		UserID:   user.ID,
		FileName: "me.png",
		MimeType: "image/png",
		Size:     2048,
		FileKey:  "deadbeef",
	}

	assembled, err := users.AssembleUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, assembled.ProfileImage)
	assert.Equal(t, "https://signed.example.com/profile-bucket/deadbeef", assembled.ProfileImage.FileURL)
	assert.Equal(t, "me.png", assembled.ProfileImage.FileName)
}

func TestAssembleUserByIDMissingUserNotFound(t *testing.T) {
	store := newMemStore()
	users, _, _, _, _, _, _ := newTestServices(store)

	_, err := users.AssembleUserByID(context.Background(), "no-such-user")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

// A user row without its account row is corruption, not a client 404.
func TestAssembleUserMissingAccountIsIntegrityError(t *testing.T) {
	store := newMemStore()
	users, _, _, _, _, _, _ := newTestServices(store)

	user := store.addUser("alice")
	delete(store.accounts, user.ID)

	_, err := users.AssembleUserByID(context.Background(), user.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindIntegrity, apperrors.KindOf(err))
}
