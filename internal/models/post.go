package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a single comment on a post. Comments are append-only; there is
// no edit or delete path.
type Comment struct {
	Date   string `json:"date" dynamodbav:"date"`
	UserID string `json:"userId" dynamodbav:"userId"`
	Text   string `json:"text" dynamodbav:"text"`
}

// Post represents a publication. Likes hold user ids; the like count is
// always derived from the array length, never cached.
type Post struct {
	ID          string    `json:"id" dynamodbav:"id" validate:"required,uuid"`
	Date        string    `json:"date" dynamodbav:"date"`
	UserID      string    `json:"userId" dynamodbav:"userId" validate:"required"`
	Description string    `json:"description" dynamodbav:"description" validate:"required,min=3"`
	Image       string    `json:"image" dynamodbav:"image"`
	Comments    []Comment `json:"comments" dynamodbav:"comments"`
	Likes       []string  `json:"likes" dynamodbav:"likes"`
}

// NewPost creates a post with a generated id and creation timestamp. The
// timestamp is stored as an RFC3339 string so the by-author index sorts
// chronologically.
func NewPost(userID, description, imageKey string) *Post {
	return &Post{
		ID:          uuid.New().String(),
		Date:        time.Now().UTC().Format(time.RFC3339Nano),
		UserID:      userID,
		Description: description,
		Image:       imageKey,
		Comments:    []Comment{},
		Likes:       []string{},
	}
}

// LikeIndex returns the position of userID in the likes list, or -1.
func (p *Post) LikeIndex(userID string) int {
	for i, id := range p.Likes {
		if id == userID {
			return i
		}
	}
	return -1
}

// RemoveLike removes the like at index i.
func (p *Post) RemoveLike(i int) {
	p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
}

// AddComment appends a comment with the current timestamp.
func (p *Post) AddComment(userID, text string) {
	p.Comments = append(p.Comments, Comment{
		Date:   time.Now().UTC().Format(time.RFC3339Nano),
		UserID: userID,
		Text:   text,
	})
}

// LikeCount returns the derived like count.
func (p *Post) LikeCount() int {
	return len(p.Likes)
}

// HasImage reports whether the post carries a stored image key.
func (p *Post) HasImage() bool {
	return p.Image != ""
}
