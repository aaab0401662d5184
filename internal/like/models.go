package like

import (
	"errors"
	"time"
)

// ErrAlreadyLiked is returned when a like insert trips the unique
// (user, target) constraint. Duplicate likes are rejected, never stored.
var ErrAlreadyLiked = errors.New("already liked")

type PostLike struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentLike struct {
	ID        int64     `json:"id"`
	CommentID int64     `json:"comment_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Liker struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	NickName string `json:"nick_name"`
}

type PostLikeWithUser struct {
	PostLike
	User Liker `json:"user"`
}

type CommentLikeWithUser struct {
	CommentLike
	User Liker `json:"user"`
}
