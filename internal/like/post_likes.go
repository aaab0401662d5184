package like

import (
	"context"
	"errors"

	"backend-snapfeed/internal/db"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PostLikes manages the likes_posts join table. The unique
// (user_id, post_id) index is the source of truth for "already liked";
// there is no separate existence check before mutations.
type PostLikes struct {
	db db.Querier
}

func NewPostLikes(db db.Querier) *PostLikes {
	return &PostLikes{db: db}
}

func (s *PostLikes) Liked(ctx context.Context, userID string, postID int64) (bool, error) {
	var liked bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM likes_posts WHERE user_id=$1 AND post_id=$2)
	`, userID, postID).Scan(&liked)
	return liked, err
}

func (s *PostLikes) Count(ctx context.Context, postID int64) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM likes_posts WHERE post_id=$1
	`, postID).Scan(&count)
	return count, err
}

// CountByPosts folds like rows for the given posts into per-post counts in
// one round trip. Posts with no likes are absent from the map.
func (s *PostLikes) CountByPosts(ctx context.Context, postIDs []int64) (map[int64]int, error) {
	rows, err := s.db.Query(ctx, `
		SELECT post_id, COUNT(*)::int
		FROM likes_posts
		WHERE post_id = ANY($1)
		GROUP BY post_id
	`, postIDs)
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

func (s *PostLikes) Like(ctx context.Context, userID string, postID int64) (PostLike, error) {
	l := PostLike{PostID: postID, UserID: userID}
	row := s.db.QueryRow(ctx, `
		INSERT INTO likes_posts (user_id, post_id)
		VALUES ($1,$2)
		RETURNING id, created_at
	`, userID, postID)
	if err := row.Scan(&l.ID, &l.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return PostLike{}, ErrAlreadyLiked
		}
		return PostLike{}, err
	}
	return l, nil
}

// Unlike reports whether a like row was actually removed.
func (s *PostLikes) Unlike(ctx context.Context, userID string, postID int64) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM likes_posts WHERE user_id=$1 AND post_id=$2
	`, userID, postID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Toggle flips the liked state and returns the state after the call.
// Delete-first keeps each step atomic: a delete that removed a row means
// the user had liked; otherwise the conditional insert takes over, and the
// unique index absorbs a racing duplicate.
func (s *PostLikes) Toggle(ctx context.Context, userID string, postID int64) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM likes_posts WHERE user_id=$1 AND post_id=$2
	`, userID, postID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO likes_posts (user_id, post_id)
		VALUES ($1,$2)
		ON CONFLICT (user_id, post_id) DO NOTHING
	`, userID, postID)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *PostLikes) ListByUser(ctx context.Context, userID string) ([]PostLike, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, post_id, user_id, created_at
		FROM likes_posts WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var likes []PostLike
	for rows.Next() {
		var l PostLike
		if err := rows.Scan(&l.ID, &l.PostID, &l.UserID, &l.CreatedAt); err != nil {
			return nil, err
		}
		likes = append(likes, l)
	}
	return likes, rows.Err()
}

func (s *PostLikes) ListByPostWithUser(ctx context.Context, postID int64) ([]PostLikeWithUser, error) {
	rows, err := s.db.Query(ctx, `
		SELECT l.id, l.post_id, l.user_id, l.created_at,
		       u.id, u.name, u.last_name, u.nick_name
		FROM likes_posts l
		JOIN users u ON u.user_id = l.user_id
		WHERE l.post_id=$1
		ORDER BY l.created_at DESC
	`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var likes []PostLikeWithUser
	for rows.Next() {
		var l PostLikeWithUser
		err := rows.Scan(&l.ID, &l.PostID, &l.UserID, &l.CreatedAt,
			&l.User.ID, &l.User.Name, &l.User.LastName, &l.User.NickName)
		if err != nil {
			return nil, err
		}
		likes = append(likes, l)
	}
	return likes, rows.Err()
}
