package comment

import "time"

type Comment struct {
	ID        int64     `json:"id"`
	Comment   string    `json:"comment"`
	PostID    int64     `json:"post_id"`
	UserID    string    `json:"user_id"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

type Author struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	NickName string `json:"nick_name"`
}

type CommentWithAuthor struct {
	Comment
	Author Author `json:"user"`
}

type PostRef struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	ImgPath     string `json:"img_path"`
}

// CommentWithDetails carries both the author and the parent post.
type CommentWithDetails struct {
	Comment
	Author Author  `json:"user"`
	Post   PostRef `json:"post"`
}

type CreateComment struct {
	PostID  int64  `json:"post_id"`
	Comment string `json:"comment"`
	UserID  string `json:"user_id"`
}
