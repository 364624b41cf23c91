package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"social-feed-api/internal/models"
	"social-feed-api/internal/repositories"
)

func TestUserCreateAndGet(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user := models.NewUser("alice", "Alice", "alice@example.com", "")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(ctx, user); !repositories.IsDuplicate(err) {
		t.Errorf("expected duplicate error, got %v", err)
	}

	got, err := repo.GetByID(ctx, "alice")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Errorf("unexpected record %+v", got)
	}

	if _, err := repo.GetByID(ctx, "ghost"); !repositories.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestUserRecordsAreIsolated(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user := models.NewUser("alice", "Alice", "alice@example.com", "")
	user.Following = []string{"bob"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Mutating a returned copy must not touch the stored record
	got, _ := repo.GetByID(ctx, "alice")
	got.Following[0] = "mallory"
	got.Name = "Mallory"

	again, _ := repo.GetByID(ctx, "alice")
	if again.Following[0] != "bob" || again.Name != "Alice" {
		t.Errorf("stored record was mutated through a copy: %+v", again)
	}
}

func TestUserCounters(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, models.NewUser("alice", "Alice", "a@example.com", "")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.AddFollowers(ctx, "alice", 2); err != nil {
		t.Fatalf("add followers failed: %v", err)
	}
	if err := repo.AddFollowers(ctx, "alice", -1); err != nil {
		t.Fatalf("add followers failed: %v", err)
	}
	if err := repo.AddPostCount(ctx, "alice", 1); err != nil {
		t.Fatalf("add post count failed: %v", err)
	}

	got, _ := repo.GetByID(ctx, "alice")
	if got.Followers != 1 {
		t.Errorf("expected followers 1, got %d", got.Followers)
	}
	if got.Post != 1 {
		t.Errorf("expected post count 1, got %d", got.Post)
	}

	if err := repo.AddFollowers(ctx, "ghost", 1); !repositories.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestSearchByNamePagination(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		id := fmt.Sprintf("u%d", i)
		if err := repo.Create(ctx, models.NewUser(id, "Anna "+id, id+"@example.com", "")); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	if err := repo.Create(ctx, models.NewUser("u6", "Bob", "u6@example.com", "")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	seen := map[string]bool{}
	var cursor *repositories.UserCursor
	for pages := 0; ; pages++ {
		if pages > 5 {
			t.Fatal("pagination did not terminate")
		}
		page, err := repo.SearchByName(ctx, "Anna", 2, cursor)
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if page.Count != len(page.Items) {
			t.Errorf("count %d does not match items %d", page.Count, len(page.Items))
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

	if len(seen) != 5 {
		t.Errorf("expected 5 matches, got %d", len(seen))
	}
	if seen["u6"] {
		t.Error("did not expect Bob in the results")
	}
}

func TestSearchByNameNoMatches(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, models.NewUser("alice", "Alice", "a@example.com", "")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	page, err := repo.SearchByName(ctx, "Zed", 2, nil)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if page.Count != 0 || page.LastKey != nil {
		t.Errorf("expected empty terminal page, got %+v", page)
	}
}

func seedPost(t *testing.T, repo *PostRepository, userID string, date time.Time) *models.Post {
	t.Helper()
	post := models.NewPost(userID, "some description", "")
	post.Date = date.Format(time.RFC3339Nano)
	if err := repo.Create(context.Background(), post); err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	return post
}

func TestQueryByAuthorOrderAndCursor(t *testing.T) {
	repo := NewPostRepository()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 4; i++ {
		post := seedPost(t, repo, "alice", base.Add(time.Duration(i)*time.Hour))
		ids = append(ids, post.ID)
	}
	seedPost(t, repo, "bob", base)

	var walked []string
	var cursor *repositories.PostCursor
	for pages := 0; ; pages++ {
		if pages > 6 {
			t.Fatal("pagination did not terminate")
		}
		page, err := repo.QueryByAuthor(ctx, "alice", 2, cursor)
		if err != nil {
			t.Fatalf("query failed: %v", err)
		}
		for _, post := range page.Items {
			if post.UserID != "alice" {
				t.Errorf("foreign post %s in author feed", post.ID)
			}
			walked = append(walked, post.ID)
		}
		if page.LastKey == nil {
			break
		}
		if page.LastKey.UserID != "alice" || page.LastKey.Date == "" {
			t.Errorf("incomplete cursor %+v", page.LastKey)
		}
		cursor = page.LastKey
	}

	// Newest first across page boundaries
	want := []string{ids[3], ids[2], ids[1], ids[0]}
	if len(walked) != len(want) {
		t.Fatalf("expected %d posts, got %d", len(want), len(walked))
	}
	for i := range want {
		if walked[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], walked[i])
		}
	}
}

func TestScanByAuthorsFiltersAndPages(t *testing.T) {
	repo := NewPostRepository()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		seedPost(t, repo, "alice", base.Add(time.Duration(i)*time.Minute))
	}
	for i := 0; i < 2; i++ {
		seedPost(t, repo, "bob", base.Add(time.Duration(i)*time.Minute))
	}
	seedPost(t, repo, "carol", base)

	seen := map[string]bool{}
	var cursor *repositories.ScanCursor
	for pages := 0; ; pages++ {
		if pages > 6 {
			t.Fatal("pagination did not terminate")
		}
		page, err := repo.ScanByAuthors(ctx, []string{"alice", "bob"}, 2, cursor)
		if err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		for _, post := range page.Items {
			if post.UserID == "carol" {
				t.Error("unexpected author carol in results")
			}
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
		t.Errorf("expected 5 posts, got %d", len(seen))
	}
}

func TestPostUpdateMissing(t *testing.T) {
	repo := NewPostRepository()

	post := models.NewPost("alice", "some description", "")
	if err := repo.Update(context.Background(), post); !repositories.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}
