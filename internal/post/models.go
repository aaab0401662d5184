package post

import "time"

// Post carries a derived like count; nothing is stored on the row itself,
// the count always comes from likes_posts at read time.
type Post struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	ImgPath     string    `json:"img_path"`
	UserID      string    `json:"user_id"`
	Likes       int       `json:"likes"`
	CreatedAt   time.Time `json:"created_at"`
}

type Author struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	NickName string `json:"nick_name"`
}

type PostWithAuthor struct {
	Post
	Author Author `json:"user"`
}

type CreatePost struct {
	Description string `json:"description"`
	ImgPath     string `json:"img_path"`
	UserID      string `json:"user_id"`
}

type UpdatePost struct {
	Description string `json:"description"`
	ImgPath     string `json:"img_path"`
}

// Filters for post listings. LikesMin/LikesMax apply to the derived count,
// inclusive on both ends.
type Filters struct {
	Description   string    `json:"description"`
	LikesMin      int       `json:"likes_min"`
	LikesMax      int       `json:"likes_max"`
	CreatedAfter  time.Time `json:"created_after"`
	CreatedBefore time.Time `json:"created_before"`
}
