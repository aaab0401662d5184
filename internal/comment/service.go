package comment

import (
	"context"

	"backend-snapfeed/internal/db"

	"github.com/jackc/pgx/v5"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) ListByPost(ctx context.Context, postID int64) ([]CommentWithAuthor, error) {
	rows, err := s.db.Query(ctx, `
		SELECT c.id, c.comment, c.post_id, c.user_id, c.created_at, COUNT(l.id)::int AS likes,
		       u.id, u.name, u.last_name, u.nick_name
		FROM comments c
		LEFT JOIN likes_comments l ON l.comment_id = c.id
		JOIN users u ON u.user_id = c.user_id
		WHERE c.post_id=$1
		GROUP BY c.id, u.id, u.name, u.last_name, u.nick_name
		ORDER BY c.created_at
	`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []CommentWithAuthor
	for rows.Next() {
		var c CommentWithAuthor
		err := rows.Scan(&c.ID, &c.Comment.Comment, &c.PostID, &c.UserID, &c.CreatedAt, &c.Likes,
			&c.Author.ID, &c.Author.Name, &c.Author.LastName, &c.Author.NickName)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// GetByID returns the comment together with its author and parent post.
func (s *Service) GetByID(ctx context.Context, id int64) (CommentWithDetails, error) {
	var c CommentWithDetails
	row := s.db.QueryRow(ctx, `
		SELECT c.id, c.comment, c.post_id, c.user_id, c.created_at, COUNT(l.id)::int AS likes,
		       u.id, u.name, u.last_name, u.nick_name,
		       p.id, p.description, p.img_path
		FROM comments c
		LEFT JOIN likes_comments l ON l.comment_id = c.id
		JOIN users u ON u.user_id = c.user_id
		JOIN posts p ON p.id = c.post_id
		WHERE c.id=$1
		GROUP BY c.id, u.id, u.name, u.last_name, u.nick_name, p.id, p.description, p.img_path
	`, id)
	err := row.Scan(&c.ID, &c.Comment.Comment, &c.PostID, &c.UserID, &c.CreatedAt, &c.Likes,
		&c.Author.ID, &c.Author.Name, &c.Author.LastName, &c.Author.NickName,
		&c.Post.ID, &c.Post.Description, &c.Post.ImgPath)
	if err != nil {
		return CommentWithDetails{}, err
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, input CreateComment) (Comment, error) {
	c := Comment{
		Comment: input.Comment,
		PostID:  input.PostID,
		UserID:  input.UserID,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO comments (comment, post_id, user_id)
		VALUES ($1,$2,$3)
		RETURNING id, created_at
	`, c.Comment, c.PostID, c.UserID)
	if err := row.Scan(&c.ID, &c.CreatedAt); err != nil {
		return Comment{}, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM comments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
