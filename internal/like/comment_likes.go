package like

import (
	"context"
	"errors"

	"backend-snapfeed/internal/db"

	"github.com/jackc/pgx/v5/pgconn"
)

// CommentLikes mirrors PostLikes over the likes_comments table, with the
// same duplicate policy.
type CommentLikes struct {
	db db.Querier
}

func NewCommentLikes(db db.Querier) *CommentLikes {
	return &CommentLikes{db: db}
}

func (s *CommentLikes) Liked(ctx context.Context, userID string, commentID int64) (bool, error) {
	var liked bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM likes_comments WHERE user_id=$1 AND comment_id=$2)
	`, userID, commentID).Scan(&liked)
	return liked, err
}

func (s *CommentLikes) Count(ctx context.Context, commentID int64) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM likes_comments WHERE comment_id=$1
	`, commentID).Scan(&count)
	return count, err
}

func (s *CommentLikes) CountByComments(ctx context.Context, commentIDs []int64) (map[int64]int, error) {
	rows, err := s.db.Query(ctx, `
		SELECT comment_id, COUNT(*)::int
		FROM likes_comments
		WHERE comment_id = ANY($1)
		GROUP BY comment_id
	`, commentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[int64]int{}
	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

func (s *CommentLikes) Like(ctx context.Context, userID string, commentID int64) (CommentLike, error) {
	l := CommentLike{CommentID: commentID, UserID: userID}
	row := s.db.QueryRow(ctx, `
		INSERT INTO likes_comments (user_id, comment_id)
		VALUES ($1,$2)
		RETURNING id, created_at
	`, userID, commentID)
	if err := row.Scan(&l.ID, &l.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return CommentLike{}, ErrAlreadyLiked
		}
		return CommentLike{}, err
	}
	return l, nil
}

func (s *CommentLikes) Unlike(ctx context.Context, userID string, commentID int64) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM likes_comments WHERE user_id=$1 AND comment_id=$2
	`, userID, commentID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *CommentLikes) Toggle(ctx context.Context, userID string, commentID int64) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM likes_comments WHERE user_id=$1 AND comment_id=$2
	`, userID, commentID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO likes_comments (user_id, comment_id)
		VALUES ($1,$2)
		ON CONFLICT (user_id, comment_id) DO NOTHING
	`, userID, commentID)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *CommentLikes) ListByCommentWithUser(ctx context.Context, commentID int64) ([]CommentLikeWithUser, error) {
	rows, err := s.db.Query(ctx, `
		SELECT l.id, l.comment_id, l.user_id, l.created_at,
		       u.id, u.name, u.last_name, u.nick_name
		FROM likes_comments l
		JOIN users u ON u.user_id = l.user_id
		WHERE l.comment_id=$1
		ORDER BY l.created_at DESC
	`, commentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var likes []CommentLikeWithUser
	for rows.Next() {
		var l CommentLikeWithUser
		err := rows.Scan(&l.ID, &l.CommentID, &l.UserID, &l.CreatedAt,
			&l.User.ID, &l.User.Name, &l.User.LastName, &l.User.NickName)
		if err != nil {
			return nil, err
		}
		likes = append(likes, l)
	}
	return likes, rows.Err()
}
