package models

// User represents a registered user. The record is keyed by the identity
// provider's stable subject id; followers is a denormalized counter while
// following carries the membership list (see the follow toggle in the user
// service for how the pair is maintained).
type User struct {
	CognitoID string   `json:"cognitoId" dynamodbav:"cognitoId" validate:"required"`
	Name      string   `json:"name" dynamodbav:"name" validate:"required,min=2"`
	Email     string   `json:"email" dynamodbav:"email" validate:"required,email"`
	Avatar    string   `json:"avatar,omitempty" dynamodbav:"avatar,omitempty"`
	Followers int      `json:"followers" dynamodbav:"followers"`
	Following []string `json:"following" dynamodbav:"following"`
	Post      int      `json:"post" dynamodbav:"post"`
}

// NewUser creates a user record for a freshly registered identity.
func NewUser(cognitoID, name, email, avatarKey string) *User {
	return &User{
		CognitoID: cognitoID,
		Name:      name,
		Email:     email,
		Avatar:    avatarKey,
		Following: []string{},
	}
}

// FollowingIndex returns the position of userID in the following list, or -1.
func (u *User) FollowingIndex(userID string) int {
	for i, id := range u.Following {
		if id == userID {
			return i
		}
	}
	return -1
}

// RemoveFollowing removes the entry at index i from the following list.
func (u *User) RemoveFollowing(i int) {
	u.Following = append(u.Following[:i], u.Following[i+1:]...)
}

// HasAvatar reports whether the user has a stored avatar key.
func (u *User) HasAvatar() bool {
	return u.Avatar != ""
}
