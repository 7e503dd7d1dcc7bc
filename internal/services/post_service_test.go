package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/growcally/backend/internal/apperrors"
	"github.com/growcally/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCreatePostStoresDerivativePairPerUpload(t *testing.T) {
	store := newMemStore()
	_, _, _, _, posts, _, blobs := newTestServices(store)

	author := store.addUser("alice")
	err := posts.CreatePost(context.Background(), CreatePostParams{
		AuthorID: author.ID,
		Caption:  "first post",
		Uploads: []Upload{{
			FileName: "my holiday photo.png",
			MimeType: "image/png",
			Size:     512,
			Data:     testPNG(t),
		}},
	})
	require.NoError(t, err)

	// Portrait and square derivatives stored as two blobs.
	assert.Len(t, blobs.puts, 2)

	require.Len(t, store.posts, 1)
	for _, post := range store.posts {
		assert.Equal(t, author.ID, post.AuthorID)
		assert.Equal(t, "first post", post.Caption)
		require.Len(t, post.Files, 1)
		file := post.Files[0]
		assert.NotEmpty(t, file.PortraitFileKey)
		assert.NotEmpty(t, file.SquareFileKey)
		assert.NotEqual(t, file.PortraitFileKey, file.SquareFileKey)
		assert.Equal(t, "my_holiday_photo.png", file.FileName)
	}
}

func TestCreatePostRejectsNonImageUpload(t *testing.T) {
	store := newMemStore()
	_, _, _, _, posts, _, blobs := newTestServices(store)

	author := store.addUser("alice")
	err := posts.CreatePost(context.Background(), CreatePostParams{
		AuthorID: author.ID,
		Uploads: []Upload{{
			FileName: "notes.txt",
			MimeType: "text/plain",
			Data:     []byte("not an image"),
		}},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Empty(t, blobs.puts)
	assert.Empty(t, store.posts)
}

func TestCreatePostValidation(t *testing.T) {
	store := newMemStore()
	_, _, _, _, posts, _, _ := newTestServices(store)

	err := posts.CreatePost(context.Background(), CreatePostParams{Uploads: []Upload{{}}})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	err = posts.CreatePost(context.Background(), CreatePostParams{AuthorID: "u-1"})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestDeletePostRemovesBlobsAndRows(t *testing.T) {
	store := newMemStore()
	_, _, likes, comments, posts, _, blobs := newTestServices(store)

	author := store.addUser("alice")
	liker := store.addUser("bob")
	post := store.addPost(author.ID, time.Now(), models.MediaFile{
		ID:              "f-1",
		PortraitFileKey: "key-portrait",
		SquareFileKey:   "key-square",
	})

	ctx := context.Background()
	_, err := likes.Like(ctx, post.ID, liker.ID)
	require.NoError(t, err)
	_, err = comments.CreateComment(ctx, liker.ID, post.ID, "bye")
	require.NoError(t, err)

	updatedPosts, updatedUser, err := posts.DeletePost(ctx, post.ID, author.ID)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"post-bucket/key-portrait", "post-bucket/key-square"}, blobs.deletes)
	assert.Empty(t, store.posts)
	assert.Empty(t, store.comments[post.ID])
	assert.Empty(t, store.likes[post.ID])
	assert.Empty(t, updatedPosts)
	assert.Empty(t, updatedUser.PostIDs)
}

func TestDeleteMissingPostNotFound(t *testing.T) {
	store := newMemStore()
	_, _, _, _, posts, _, _ := newTestServices(store)
	author := store.addUser("alice")

	_, _, err := posts.DeletePost(context.Background(), "no-such-post", author.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
