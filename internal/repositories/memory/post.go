package memory

import (
	"context"
	"sort"
	"sync"

	"social-feed-api/internal/models"
	"social-feed-api/internal/repositories"
)

// PostRepository is an in-memory post record store.
type PostRepository struct {
	mu    sync.RWMutex
	posts map[string]*models.Post
	order []string // insertion order, stands in for the table's scan order
}

// NewPostRepository creates an empty in-memory post store.
func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[string]*models.Post)}
}

func copyPost(p *models.Post) *models.Post {
	c := *p
	c.Comments = append([]models.Comment(nil), p.Comments...)
	c.Likes = append([]string(nil), p.Likes...)
	return &c
}

// Create stores a new post record.
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.posts[post.ID]; exists {
		return repositories.DuplicateError("post", post.ID)
	}
	r.posts[post.ID] = copyPost(post)
	r.order = append(r.order, post.ID)
	return nil
}

// GetByID retrieves a post record.
func (r *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, repositories.NotFoundError("post", id)
	}
	return copyPost(post), nil
}

// Update persists the full post record.
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[post.ID]; !ok {
		return repositories.NotFoundError("post", post.ID)
	}
	r.posts[post.ID] = copyPost(post)
	return nil
}

// QueryByAuthor returns the author's posts ordered by date descending,
// resuming after the cursor.
func (r *PostRepository) QueryByAuthor(ctx context.Context, userID string, limit int, cursor *repositories.PostCursor) (*repositories.PostPage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var authored []*models.Post
	for _, id := range r.order {
		if r.posts[id].UserID == userID {
			authored = append(authored, r.posts[id])
		}
	}
	sort.Slice(authored, func(i, j int) bool {
		return authored[i].Date > authored[j].Date
	})

	start := 0
	if cursor != nil && cursor.ID != "" {
		for i, post := range authored {
			if post.ID == cursor.ID {
				start = i + 1
				break
			}
		}
	}

	page := &repositories.PostPage{Items: []*models.Post{}}
	for i := start; i < len(authored); i++ {
		if limit > 0 && len(page.Items) == limit {
			last := page.Items[len(page.Items)-1]
			page.LastKey = &repositories.PostCursor{ID: last.ID, UserID: last.UserID, Date: last.Date}
			break
		}
		page.Items = append(page.Items, copyPost(authored[i]))
	}
	page.Count = len(page.Items)

	return page, nil
}

// ScanByAuthors returns posts by any of the given authors in scan order.
func (r *PostRepository) ScanByAuthors(ctx context.Context, userIDs []string, limit int, cursor *repositories.ScanCursor) (*repositories.PostScanPage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	authors := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		authors[id] = true
	}

	start := 0
	if cursor != nil && cursor.ID != "" {
		for i, id := range r.order {
			if id == cursor.ID {
				start = i + 1
				break
			}
		}
	}

	page := &repositories.PostScanPage{Items: []*models.Post{}}
	for i := start; i < len(r.order); i++ {
		post := r.posts[r.order[i]]
		if !authors[post.UserID] {
			continue
		}
		if limit > 0 && len(page.Items) == limit {
			page.LastKey = &repositories.ScanCursor{ID: page.Items[len(page.Items)-1].ID}
			break
		}
		page.Items = append(page.Items, copyPost(post))
	}
	page.Count = len(page.Items)

	return page, nil
}
