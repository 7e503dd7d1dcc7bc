package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/growcally/backend/internal/models"
	"github.com/growcally/backend/internal/repositories"
	"gorm.io/gorm"
)

// memStore is an in-memory stand-in for the Postgres repositories. It
// replicates the store-level semantics the services rely on: record-not-found
// and duplicated-key errors, the composite unique constraint on likes, and
// counter updates travelling with row writes.
type memStore struct {
	users         map[string]models.User
	accounts      map[string]models.Account // keyed by owner id
	profileImages map[string]models.ProfileImage
	posts         map[string]*models.Post
	likes         map[string]map[string]bool // post id -> user ids
	comments      map[string][]models.Comment
	replies       map[string][]models.Reply

	nextID int
}

func newMemStore() *memStore {
	return &memStore{
		users:         map[string]models.User{},
		accounts:      map[string]models.Account{},
		profileImages: map[string]models.ProfileImage{},
		posts:         map[string]*models.Post{},
		likes:         map[string]map[string]bool{},
		comments:      map[string][]models.Comment{},
		replies:       map[string][]models.Reply{},
	}
}

func (s *memStore) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *memStore) addUser(givenName string) models.User {
	user := models.User{
		ID:         s.id("u"),
		Sub:        s.id("sub"),
		Email:      givenName + "@example.com",
		GivenName:  givenName,
		FamilyName: "Tester",
		Status:     models.UserStatusConfirmed,
	}
	s.users[user.ID] = user
	s.accounts[user.ID] = models.Account{ID: s.id("acc"), OwnerID: user.ID}
	return user
}

func (s *memStore) addPost(authorID string, createdAt time.Time, files ...models.MediaFile) *models.Post {
	post := &models.Post{
		ID:        s.id("p"),
		AuthorID:  authorID,
		Caption:   "caption",
		Files:     files,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	s.posts[post.ID] = post
	return post
}

func (s *memStore) addComment(postID, authorID, content string, createdAt time.Time) models.Comment {
	comment := models.Comment{
		ID:        s.id("c"),
		PostID:    postID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	s.comments[postID] = append(s.comments[postID], comment)
	return comment
}

// --- UserRepository ---

func (s *memStore) CreateUserWithAccount(user *models.User) error {
	if user.ID == "" {
		user.ID = s.id("u")
	}
	s.users[user.ID] = *user
	s.accounts[user.ID] = models.Account{ID: s.id("acc"), OwnerID: user.ID}
	return nil
}

func (s *memStore) GetUserByID(id string) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	u := user
	return &u, nil
}

func (s *memStore) GetUserByEmail(email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memStore) GetUserBySub(sub string) (*models.User, error) {
	for _, user := range s.users {
		if user.Sub == sub {
			u := user
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memStore) UpdateUser(user *models.User) error {
	s.users[user.ID] = *user
	return nil
}

func (s *memStore) SetStatus(userID, status string) error {
	user := s.users[userID]
	user.Status = status
	s.users[userID] = user
	return nil
}

func (s *memStore) SetRefreshToken(userID string, refreshToken *string) error {
	user := s.users[userID]
	user.RefreshToken = refreshToken
	s.users[userID] = user
	return nil
}

func (s *memStore) SetBio(userID, bio string) error {
	user := s.users[userID]
	user.Bio = &bio
	s.users[userID] = user
	return nil
}

func (s *memStore) GetAccountByUserID(userID string) (*models.Account, error) {
	account, ok := s.accounts[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	a := account
	return &a, nil
}

func (s *memStore) GetProfileImage(userID string) (*models.ProfileImage, error) {
	image, ok := s.profileImages[userID]
	if !ok {
		return nil, nil
	}
	i := image
	return &i, nil
}

func (s *memStore) ReplaceProfileImage(userID string, image *models.ProfileImage) error {
	if image.ID == "" {
		image.ID = s.id("img")
	}
	image.UserID = userID
	s.profileImages[userID] = *image
	return nil
}

// --- PostRepository ---

func (s *memStore) CreatePost(post *models.Post) error {
	if post.ID == "" {
		post.ID = s.id("p")
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	p := *post
	s.posts[post.ID] = &p
	return nil
}

func (s *memStore) GetPostByID(id string) (*models.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p := *post
	p.Files = nil
	return &p, nil
}

func (s *memStore) GetPostWithFiles(id string) (*models.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p := *post
	return &p, nil
}

func (s *memStore) GetAllPosts() ([]models.Post, error) {
	posts := make([]models.Post, 0, len(s.posts))
	for _, post := range s.posts {
		posts = append(posts, *post)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (s *memStore) GetPostsByAuthorID(authorID string) ([]models.Post, error) {
	var posts []models.Post
	for _, post := range s.posts {
		if post.AuthorID == authorID {
			posts = append(posts, *post)
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (s *memStore) GetPostIDsByAuthorID(authorID string) ([]string, error) {
	posts, _ := s.GetPostsByAuthorID(authorID)
	ids := make([]string, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}
	return ids, nil
}

func (s *memStore) GetLikedPostIDs(userID string) ([]string, error) {
	var ids []string
	for postID, userIDs := range s.likes {
		if userIDs[userID] {
			ids = append(ids, postID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *memStore) GetMediaFiles(postID string) ([]models.MediaFile, error) {
	post, ok := s.posts[postID]
	if !ok {
		return nil, nil
	}
	return append([]models.MediaFile{}, post.Files...), nil
}

func (s *memStore) DeletePostCascade(postID string) error {
	if _, ok := s.posts[postID]; !ok {
		return gorm.ErrRecordNotFound
	}
	for _, comment := range s.comments[postID] {
		delete(s.replies, comment.ID)
	}
	delete(s.comments, postID)
	delete(s.likes, postID)
	delete(s.posts, postID)
	return nil
}

// --- LikeRepository ---

func (s *memStore) CreateLikeAndIncrement(postID, userID string) (int, error) {
	if s.likes[postID] == nil {
		s.likes[postID] = map[string]bool{}
	}
	if s.likes[postID][userID] {
		return 0, gorm.ErrDuplicatedKey
	}
	s.likes[postID][userID] = true
	s.posts[postID].TotalLikes++
	return s.posts[postID].TotalLikes, nil
}

func (s *memStore) DeleteLikeAndDecrement(postID, userID string) (int, error) {
	if !s.likes[postID][userID] {
		return 0, repositories.ErrNotLiked
	}
	delete(s.likes[postID], userID)
	s.posts[postID].TotalLikes--
	return s.posts[postID].TotalLikes, nil
}

func (s *memStore) HasUserLikedPost(postID, userID string) (bool, error) {
	return s.likes[postID][userID], nil
}

// --- CommentRepository ---

func (s *memStore) CreateCommentAndIncrement(comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = s.id("c")
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	s.comments[comment.PostID] = append(s.comments[comment.PostID], *comment)
	s.posts[comment.PostID].TotalComments++
	return nil
}

func (s *memStore) GetCommentsByPostID(postID string) ([]models.Comment, error) {
	return append([]models.Comment{}, s.comments[postID]...), nil
}

func (s *memStore) GetRepliesByCommentID(commentID string) ([]models.Reply, error) {
	return append([]models.Reply{}, s.replies[commentID]...), nil
}

// --- BlobStore ---

// fakeBlobStore resolves keys to deterministic URLs and records every call.
type fakeBlobStore struct {
	puts    []string
	deletes []string
	urls    int
}

func (b *fakeBlobStore) Put(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	b.puts = append(b.puts, bucket+"/"+key)
	return nil
}

func (b *fakeBlobStore) GetURL(ctx context.Context, bucket, key string) (string, error) {
	b.urls++
	return "https://signed.example.com/" + bucket + "/" + key, nil
}

func (b *fakeBlobStore) Delete(ctx context.Context, bucket, key string) error {
	b.deletes = append(b.deletes, bucket+"/"+key)
	return nil
}

// newTestServices wires the full service graph over one memStore.
func newTestServices(store *memStore) (*UserAssembler, *FeedAssembler, *LikeService, *CommentService, *PostService, *ProfileService, *fakeBlobStore) {
	blobs := &fakeBlobStore{}
	userAssembler := NewUserAssembler(store, store, blobs, "profile-bucket")
	feedAssembler := NewFeedAssembler(store, store, userAssembler, blobs, "post-bucket")
	likeService := NewLikeService(store, store)
	commentService := NewCommentService(store, store, feedAssembler)
	postService := NewPostService(store, userAssembler, feedAssembler, blobs, "post-bucket")
	profileService := NewProfileService(store, userAssembler, blobs, "profile-bucket")
	return userAssembler, feedAssembler, likeService, commentService, postService, profileService, blobs
}
