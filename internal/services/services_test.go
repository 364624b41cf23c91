package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"social-feed-api/internal/adapters/identity"
	"social-feed-api/internal/adapters/storage"
	"social-feed-api/internal/config"
	"social-feed-api/internal/models"
	"social-feed-api/internal/repositories"
	"social-feed-api/internal/repositories/memory"
)

type testEnv struct {
	users    *memory.UserRepository
	posts    *memory.PostRepository
	storage  *storage.MockObjectStorage
	provider *identity.MockProvider
	auth     AuthService
	user     UserService
	post     PostService
	feed     FeedService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := memory.NewUserRepository()
	posts := memory.NewPostRepository()
	store := storage.NewMockObjectStorage()
	provider := identity.NewMockProvider()

	buckets := config.BucketConfig{
		Avatar:    "avatars",
		Post:      "post-images",
		URLExpiry: 15 * time.Minute,
	}
	feedCfg := config.FeedConfig{
		AuthorPageSize: 1,
		HomePageSize:   3,
		SearchPageSize: 2,
	}

	return &testEnv{
		users:    users,
		posts:    posts,
		storage:  store,
		provider: provider,
		auth:     NewAuthService(users, provider, store, buckets),
		user:     NewUserService(users, store, buckets, feedCfg),
		post:     NewPostService(posts, users, store, buckets),
		feed:     NewFeedService(posts, users, store, buckets, feedCfg),
	}
}

func (e *testEnv) seedUser(t *testing.T, id, name string) *models.User {
	t.Helper()
	user := models.NewUser(id, name, name+"@example.com", "")
	if err := e.users.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user %s: %v", id, err)
	}
	return user
}

func (e *testEnv) seedPost(t *testing.T, userID, description, date string) *models.Post {
	t.Helper()
	post := models.NewPost(userID, description, "")
	if date != "" {
		post.Date = date
	}
	if err := e.posts.Create(context.Background(), post); err != nil {
		t.Fatalf("failed to seed post for %s: %v", userID, err)
	}
	return post
}

func testImage() *storage.File {
	return &storage.File{
		Name:        "photo.jpg",
		ContentType: "image/jpeg",
		Data:        []byte("fake image bytes"),
	}
}

// Follow toggling

func TestToggleFollowRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "alice", "Alice")
	env.seedUser(t, "bob", "Bob")

	following, err := env.user.ToggleFollow(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("follow failed: %v", err)
	}
	if !following {
		t.Error("expected first toggle to follow")
	}

	bob, _ := env.users.GetByID(ctx, "bob")
	if bob.FollowingIndex("alice") < 0 {
		t.Error("expected alice in bob's following list")
	}
	alice, _ := env.users.GetByID(ctx, "alice")
	if alice.Followers != 1 {
		t.Errorf("expected alice's followers counter to be 1, got %d", alice.Followers)
	}

	following, err = env.user.ToggleFollow(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("unfollow failed: %v", err)
	}
	if following {
		t.Error("expected second toggle to unfollow")
	}

	bob, _ = env.users.GetByID(ctx, "bob")
	if bob.FollowingIndex("alice") >= 0 {
		t.Error("expected alice removed from bob's following list")
	}
	alice, _ = env.users.GetByID(ctx, "alice")
	if alice.Followers != 0 {
		t.Errorf("expected alice's followers counter back to 0, got %d", alice.Followers)
	}
}

func TestToggleFollowSelf(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "alice", "Alice")

	if _, err := env.user.ToggleFollow(ctx, "alice", "alice"); !IsInvalidInput(err) {
		t.Errorf("expected invalid input for self follow, got %v", err)
	}

	alice, _ := env.users.GetByID(ctx, "alice")
	if len(alice.Following) != 0 || alice.Followers != 0 {
		t.Error("self follow must not mutate the record")
	}
}

func TestToggleFollowMissingUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "alice", "Alice")

	if _, err := env.user.ToggleFollow(ctx, "alice", "ghost"); !repositories.IsNotFound(err) {
		t.Errorf("expected not found for missing followed user, got %v", err)
	}
	if _, err := env.user.ToggleFollow(ctx, "ghost", "alice"); !repositories.IsNotFound(err) {
		t.Errorf("expected not found for missing follower, got %v", err)
	}
}

// Like toggling

func TestToggleLikeRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "alice", "Alice")
	post := env.seedPost(t, "alice", "first post", "")

	liked, err := env.post.ToggleLike(ctx, "alice", post.ID)
	if err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if !liked {
		t.Error("expected first toggle to like")
	}

	stored, _ := env.posts.GetByID(ctx, post.ID)
	if stored.LikeCount() != 1 {
		t.Errorf("expected derived like count 1, got %d", stored.LikeCount())
	}

	liked, err = env.post.ToggleLike(ctx, "alice", post.ID)
	if err != nil {
		t.Fatalf("unlike failed: %v", err)
	}
	if liked {
		t.Error("expected second toggle to unlike")
	}

	stored, _ = env.posts.GetByID(ctx, post.ID)
	if stored.LikeCount() != 0 {
		t.Errorf("expected derived like count 0, got %d", stored.LikeCount())
	}
}

func TestToggleLikeMissingRequester(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "alice", "Alice")
	post := env.seedPost(t, "alice", "first post", "")

	if _, err := env.post.ToggleLike(ctx, "ghost", post.ID); !repositories.IsNotFound(err) {
		t.Errorf("expected not found for missing requester, got %v", err)
	}
}

// Comments

func TestAddCommentLengthBoundary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "alice", "Alice")
	post := env.seedPost(t, "alice", "first post", "")

	if err := env.post.AddComment(ctx, "alice", post.ID, "no"); !IsInvalidInput(err) {
		t.Errorf("expected invalid input for two character comment, got %v", err)
	}
	if err := env.post.AddComment(ctx, "alice", post.ID, "yes"); err != nil {
		t.Fatalf("three character comment rejected: %v", err)
	}

	stored, _ := env.posts.GetByID(ctx, post.ID)
	if len(stored.Comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(stored.Comments))
	}
	comment := stored.Comments[0]
	if comment.UserID != "alice" || comment.Text != "yes" {
		t.Errorf("unexpected comment %+v", comment)
	}
	if comment.Date == "" {
		t.Error("expected comment to carry a timestamp")
	}
}

// Post creation and retrieval

func TestCreatePost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "alice", "Alice")

	post, err := env.post.CreatePost(ctx, "alice", &CreatePostRequest{
		Description: "hello world",
		Image:       testImage(),
	})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	if post.ID == "" || post.Date == "" {
		t.Error("expected generated id and date")
	}
	if !env.storage.Exists("post-images", post.Image) {
		t.Error("expected image stored under the returned key")
	}

	alice, _ := env.users.GetByID(ctx, "alice")
	if alice.Post != 1 {
		t.Errorf("expected post counter 1, got %d", alice.Post)
	}
}

func TestCreatePostValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "alice", "Alice")

	cases := []struct {
		name string
		req  *CreatePostRequest
	}{
		{"short description", &CreatePostRequest{Description: "hi", Image: testImage()}},
		{"missing image", &CreatePostRequest{Description: "hello world"}},
		{"bad extension", &CreatePostRequest{
			Description: "hello world",
			Image:       &storage.File{Name: "notes.txt", Data: []byte("x")},
		}},
	}
	for _, tc := range cases {
		if _, err := env.post.CreatePost(ctx, "alice", tc.req); !IsInvalidInput(err) {
			t.Errorf("%s: expected invalid input, got %v", tc.name, err)
		}
	}
}

func TestGetPostResolvesImage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "alice", "Alice")

	created, err := env.post.CreatePost(ctx, "alice", &CreatePostRequest{
		Description: "hello world",
		Image:       testImage(),
	})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	got, err := env.post.GetPost(ctx, created.ID)
	if err != nil {
		t.Fatalf("get post failed: %v", err)
	}
	if !strings.HasPrefix(got.Image, "https://") {
		t.Errorf("expected signed url, got %q", got.Image)
	}
	if env.storage.SignedURLCalls != 1 {
		t.Errorf("expected one signed url call, got %d", env.storage.SignedURLCalls)
	}
}

func TestGetPostWithoutImageSkipsStorage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "alice", "Alice")
	post := env.seedPost(t, "alice", "plain post", "")

	got, err := env.post.GetPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("get post failed: %v", err)
	}
	if got.Image != "" {
		t.Errorf("expected image left empty, got %q", got.Image)
	}
	if env.storage.SignedURLCalls != 0 {
		t.Errorf("expected no signed url calls, got %d", env.storage.SignedURLCalls)
	}
}

// Feeds

func TestAuthorFeedPaginationWalk(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "alice", "Alice")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var seeded []string
	for i := 0; i < 3; i++ {
		post := env.seedPost(t, "alice", "post number",
			base.Add(time.Duration(i)*time.Minute).Format(time.RFC3339Nano))
		seeded = append(seeded, post.ID)
	}

	seen := map[string]bool{}
	var order []string
	var cursor *repositories.PostCursor
	for pages := 0; ; pages++ {
		if pages > 5 {
			t.Fatal("pagination did not terminate")
		}
		page, err := env.feed.ByAuthor(ctx, "alice", cursor)
		if err != nil {
			t.Fatalf("author feed failed: %v", err)
		}
		if page.Count != len(page.Items) {
			t.Errorf("count %d does not match items %d", page.Count, len(page.Items))
		}
		if len(page.Items) > 1 {
			t.Errorf("expected page size 1, got %d", len(page.Items))
		}
		for _, post := range page.Items {
			if seen[post.ID] {
				t.Errorf("post %s returned twice", post.ID)
			}
			seen[post.ID] = true
			order = append(order, post.ID)
		}
		if page.LastKey == nil {
			break
		}
		cursor = page.LastKey
	}

	if len(seen) != 3 {
		t.Fatalf("expected all 3 posts across pages, got %d", len(seen))
	}
	// Newest first: the last seeded post leads the walk
	if order[0] != seeded[2] {
		t.Errorf("expected newest post first, got %s", order[0])
	}
}

func TestAuthorFeedMissingAuthor(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.feed.ByAuthor(context.Background(), "ghost", nil); !repositories.IsNotFound(err) {
		t.Errorf("expected not found for unknown author, got %v", err)
	}
}

func TestHomeFeedAuthorSet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "alice", "Alice")
	env.seedUser(t, "bob", "Bob")
	env.seedUser(t, "carol", "Carol")

	// Bob follows alice: bob lands on alice's membership list, which is
	// exactly the author set the home feed reads
	if _, err := env.user.ToggleFollow(ctx, "bob", "alice"); err != nil {
		t.Fatalf("follow failed: %v", err)
	}

	env.seedPost(t, "alice", "from alice", "")
	env.seedPost(t, "bob", "from bob", "")
	env.seedPost(t, "carol", "from carol", "")

	page, err := env.feed.Home(ctx, "alice", nil)
	if err != nil {
		t.Fatalf("home feed failed: %v", err)
	}

	authors := map[string]bool{}
	for _, post := range page.Items {
		authors[post.UserID] = true
	}
	if !authors["alice"] || !authors["bob"] {
		t.Errorf("expected posts from alice and bob, got %v", authors)
	}
	if authors["carol"] {
		t.Error("did not expect posts from carol")
	}
}

func TestHomeFeedPaginationWalk(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "alice", "Alice")

	for i := 0; i < 5; i++ {
		env.seedPost(t, "alice", "another post", "")
	}

	seen := map[string]bool{}
	var cursor *repositories.ScanCursor
	for pages := 0; ; pages++ {
		if pages > 5 {
			t.Fatal("pagination did not terminate")
		}
		page, err := env.feed.Home(ctx, "alice", cursor)
		if err != nil {
			t.Fatalf("home feed failed: %v", err)
		}
		if len(page.Items) > 3 {
			t.Errorf("expected page size 3, got %d", len(page.Items))
		}
		for _, post := range page.Items {
			if seen[post.ID] {
				t.Errorf("post %s returned twice", post.ID)
			}
			seen[post.ID] = true
		}
		if page.LastKey == nil {
			break
		}
		cursor = page.LastKey
	}

	if len(seen) != 5 {
		t.Errorf("expected all 5 posts across pages, got %d", len(seen))
	}
}

// Profile

func TestMeResolvesAvatar(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := models.NewUser("alice", "Alice", "alice@example.com", "avatar-key.jpg")
	if err := env.users.Create(ctx, user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	env.storage.Put("avatars", "avatar-key.jpg", []byte("bytes"))

	got, err := env.user.Me(ctx, "alice")
	if err != nil {
		t.Fatalf("me failed: %v", err)
	}
	if !strings.HasPrefix(got.Avatar, "https://") {
		t.Errorf("expected signed avatar url, got %q", got.Avatar)
	}
}

func TestMeWithoutAvatarSkipsStorage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "alice", "Alice")

	got, err := env.user.Me(ctx, "alice")
	if err != nil {
		t.Fatalf("me failed: %v", err)
	}
	if got.Avatar != "" {
		t.Errorf("expected empty avatar, got %q", got.Avatar)
	}
	if env.storage.SignedURLCalls != 0 {
		t.Errorf("expected no signed url calls, got %d", env.storage.SignedURLCalls)
	}
}

func TestUpdateProfileReplacesAvatar(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "alice", "Alice")

	if err := env.user.UpdateProfile(ctx, "alice", &UpdateProfileRequest{Avatar: testImage()}); err != nil {
		t.Fatalf("first avatar upload failed: %v", err)
	}
	first, _ := env.users.GetByID(ctx, "alice")
	if first.Avatar == "" {
		t.Fatal("expected avatar key set")
	}

	if err := env.user.UpdateProfile(ctx, "alice", &UpdateProfileRequest{Avatar: testImage()}); err != nil {
		t.Fatalf("avatar replacement failed: %v", err)
	}
	second, _ := env.users.GetByID(ctx, "alice")
	if second.Avatar == first.Avatar {
		t.Error("expected a fresh avatar key")
	}
	if env.storage.Exists("avatars", first.Avatar) {
		t.Error("expected previous avatar object deleted")
	}
}

func TestDeleteAvatar(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "alice", "Alice")

	if err := env.user.UpdateProfile(ctx, "alice", &UpdateProfileRequest{Avatar: testImage()}); err != nil {
		t.Fatalf("avatar upload failed: %v", err)
	}
	stored, _ := env.users.GetByID(ctx, "alice")
	key := stored.Avatar

	if err := env.user.DeleteAvatar(ctx, "alice"); err != nil {
		t.Fatalf("delete avatar failed: %v", err)
	}
	after, _ := env.users.GetByID(ctx, "alice")
	if after.Avatar != "" {
		t.Error("expected avatar field cleared")
	}
	if env.storage.Exists("avatars", key) {
		t.Error("expected avatar object removed")
	}

	// Deleting again is a no-op
	if err := env.user.DeleteAvatar(ctx, "alice"); err != nil {
		t.Errorf("second delete should be a no-op, got %v", err)
	}
}

func TestSearchPaginationWalk(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "u1", "Anna One")
	env.seedUser(t, "u2", "Anna Two")
	env.seedUser(t, "u3", "Anna Three")
	env.seedUser(t, "u4", "Bob")

	seen := map[string]bool{}
	var cursor *repositories.UserCursor
	for pages := 0; ; pages++ {
		if pages > 5 {
			t.Fatal("pagination did not terminate")
		}
		page, err := env.user.Search(ctx, "Anna", cursor)
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(page.Items) > 2 {
			t.Errorf("expected page size 2, got %d", len(page.Items))
		}
		for _, u := range page.Items {
			if seen[u.CognitoID] {
				t.Errorf("user %s returned twice", u.CognitoID)
			}
			seen[u.CognitoID] = true
		}
		if page.LastKey == nil {
			break
		}
		cursor = page.LastKey
	}

	if len(seen) != 3 {
		t.Errorf("expected 3 matches, got %d", len(seen))
	}
	if seen["u4"] {
		t.Error("did not expect Bob in the results")
	}
}

// Auth flows

func TestSignUpCreatesRecord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.auth.SignUp(ctx, &SignUpRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "Str0ng!pass",
		Avatar:   testImage(),
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	// The record is keyed by the provider's subject id
	session := loginConfirmed(t, env, "alice@example.com", "Str0ng!pass")
	sub := strings.TrimPrefix(session.Token, "mock-token-")
	user, err := env.users.GetByID(ctx, sub)
	if err != nil {
		t.Fatalf("expected user record keyed by subject id: %v", err)
	}
	if user.Email != "alice@example.com" || user.Name != "Alice" {
		t.Errorf("unexpected record %+v", user)
	}
	if user.Avatar == "" {
		t.Error("expected avatar key stored on the record")
	}
}

func loginConfirmed(t *testing.T, env *testEnv, email, password string) *identity.Session {
	t.Helper()
	if err := env.auth.ConfirmEmail(context.Background(), &ConfirmEmailRequest{Email: email, Code: "123456"}); err != nil {
		t.Fatalf("confirm email failed: %v", err)
	}
	session, err := env.auth.Login(context.Background(), &LoginRequest{Login: email, Password: password})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return session
}

func TestSignUpValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  *SignUpRequest
	}{
		{"bad email", &SignUpRequest{Name: "Alice", Email: "not-an-email", Password: "Str0ng!pass"}},
		{"weak password", &SignUpRequest{Name: "Alice", Email: "a@example.com", Password: "short"}},
		{"short name", &SignUpRequest{Name: "A", Email: "a@example.com", Password: "Str0ng!pass"}},
		{"bad avatar extension", &SignUpRequest{
			Name: "Alice", Email: "a@example.com", Password: "Str0ng!pass",
			Avatar: &storage.File{Name: "resume.pdf", Data: []byte("x")},
		}},
	}
	for _, tc := range cases {
		if err := env.auth.SignUp(ctx, tc.req); !IsInvalidInput(err) {
			t.Errorf("%s: expected invalid input, got %v", tc.name, err)
		}
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := &SignUpRequest{Name: "Alice", Email: "alice@example.com", Password: "Str0ng!pass"}
	if err := env.auth.SignUp(ctx, req); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if err := env.auth.SignUp(ctx, req); !identity.IsUserExists(err) {
		t.Errorf("expected user exists error, got %v", err)
	}
}

func TestLoginValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  *LoginRequest
	}{
		{"missing password", &LoginRequest{Login: "alice@example.com"}},
		{"missing login", &LoginRequest{Password: "Str0ng!pass"}},
		{"bad email", &LoginRequest{Login: "not-an-email", Password: "Str0ng!pass"}},
	}
	for _, tc := range cases {
		if _, err := env.auth.Login(ctx, tc.req); !IsInvalidInput(err) {
			t.Errorf("%s: expected invalid input, got %v", tc.name, err)
		}
	}
}

func TestLoginUnconfirmed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.auth.SignUp(ctx, &SignUpRequest{
		Name: "Alice", Email: "alice@example.com", Password: "Str0ng!pass",
	}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if _, err := env.auth.Login(ctx, &LoginRequest{Login: "alice@example.com", Password: "Str0ng!pass"}); err == nil {
		t.Error("expected login to fail before email confirmation")
	}
}

func TestPasswordRecovery(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.auth.SignUp(ctx, &SignUpRequest{
		Name: "Alice", Email: "alice@example.com", Password: "Str0ng!pass",
	}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if err := env.auth.ConfirmEmail(ctx, &ConfirmEmailRequest{Email: "alice@example.com", Code: "123456"}); err != nil {
		t.Fatalf("confirm email failed: %v", err)
	}

	if err := env.auth.ForgotPassword(ctx, "alice@example.com"); err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}
	if err := env.auth.ConfirmPassword(ctx, &ConfirmPasswordRequest{
		Email: "alice@example.com", Code: "123456", NewPassword: "N3w!password",
	}); err != nil {
		t.Fatalf("confirm password failed: %v", err)
	}

	if _, err := env.auth.Login(ctx, &LoginRequest{Login: "alice@example.com", Password: "N3w!password"}); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
}
