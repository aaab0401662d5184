package like

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
)

var errLike = errors.New("db error")

func newLikeMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	return mock
}

func TestPostToggleAlternates(t *testing.T) {
	mock := newLikeMock(t)
	defer mock.Close()
	svc := NewPostLikes(mock)

	// not liked yet: delete removes nothing, insert runs
	mock.ExpectExec(`DELETE FROM likes_posts WHERE user_id=\$1 AND post_id=\$2`).
		WithArgs("auth-1", int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`INSERT INTO likes_posts \(user_id, post_id\)`).
		WithArgs("auth-1", int64(7)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	first, err := svc.Toggle(context.Background(), "auth-1", 7)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !first {
		t.Fatal("first toggle should report liked")
	}

	// now liked: delete removes the row, no insert follows
	mock.ExpectExec(`DELETE FROM likes_posts WHERE user_id=\$1 AND post_id=\$2`).
		WithArgs("auth-1", int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	second, err := svc.Toggle(context.Background(), "auth-1", 7)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if second == first {
		t.Fatal("second toggle should negate the first")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostLikeDuplicate(t *testing.T) {
	mock := newLikeMock(t)
	defer mock.Close()
	svc := NewPostLikes(mock)

	mock.ExpectQuery(`INSERT INTO likes_posts \(user_id, post_id\)`).
		WithArgs("auth-1", int64(7)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "likes_posts_user_post_key"})

	_, err := svc.Like(context.Background(), "auth-1", 7)
	if !errors.Is(err, ErrAlreadyLiked) {
		t.Fatalf("want ErrAlreadyLiked, got %v", err)
	}
}

func TestPostLike(t *testing.T) {
	mock := newLikeMock(t)
	defer mock.Close()
	svc := NewPostLikes(mock)

	createdAt := time.Now()
	mock.ExpectQuery(`INSERT INTO likes_posts \(user_id, post_id\)`).
		WithArgs("auth-1", int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), createdAt))

	l, err := svc.Like(context.Background(), "auth-1", 7)
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if l.ID != 3 || l.PostID != 7 || l.UserID != "auth-1" {
		t.Fatalf("unexpected like: %+v", l)
	}
}

func TestPostUnlike(t *testing.T) {
	mock := newLikeMock(t)
	defer mock.Close()
	svc := NewPostLikes(mock)

	mock.ExpectExec(`DELETE FROM likes_posts WHERE user_id=\$1 AND post_id=\$2`).
		WithArgs("auth-1", int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	removed, err := svc.Unlike(context.Background(), "auth-1", 7)
	if err != nil || !removed {
		t.Fatalf("unlike: removed=%v err=%v", removed, err)
	}

	mock.ExpectExec(`DELETE FROM likes_posts WHERE user_id=\$1 AND post_id=\$2`).
		WithArgs("auth-1", int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	removed, err = svc.Unlike(context.Background(), "auth-1", 7)
	if err != nil || removed {
		t.Fatalf("second unlike: removed=%v err=%v", removed, err)
	}
}

func TestPostLiked(t *testing.T) {
	mock := newLikeMock(t)
	defer mock.Close()
	svc := NewPostLikes(mock)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM likes_posts WHERE user_id=\$1 AND post_id=\$2\)`).
		WithArgs("auth-1", int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	liked, err := svc.Liked(context.Background(), "auth-1", 7)
	if err != nil {
		t.Fatalf("liked: %v", err)
	}
	if !liked {
		t.Fatal("want liked")
	}
}

func TestCountByPosts(t *testing.T) {
	mock := newLikeMock(t)
	defer mock.Close()
	svc := NewPostLikes(mock)

	ids := []int64{1, 2, 3}
	// post 3 has no likes and is left out of the result
	mock.ExpectQuery(`WHERE post_id = ANY\(\$1\)`).
		WithArgs(ids).
		WillReturnRows(pgxmock.NewRows([]string{"post_id", "count"}).
			AddRow(int64(1), 4).
			AddRow(int64(2), 1))

	counts, err := svc.CountByPosts(context.Background(), ids)
	if err != nil {
		t.Fatalf("count by posts: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("want 2 entries, got %d", len(counts))
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	if total != 5 {
		t.Fatalf("want total 5, got %d", total)
	}
	if _, ok := counts[3]; ok {
		t.Fatal("post with no likes should be absent")
	}
}

func TestCountByPostsError(t *testing.T) {
	mock := newLikeMock(t)
	defer mock.Close()
	svc := NewPostLikes(mock)

	mock.ExpectQuery(`WHERE post_id = ANY\(\$1\)`).
		WithArgs([]int64{1}).
		WillReturnError(errLike)

	if _, err := svc.CountByPosts(context.Background(), []int64{1}); !errors.Is(err, errLike) {
		t.Fatalf("want errLike, got %v", err)
	}
}

func TestListByPostWithUser(t *testing.T) {
	mock := newLikeMock(t)
	defer mock.Close()
	svc := NewPostLikes(mock)

	createdAt := time.Now()
	mock.ExpectQuery(`JOIN users u ON u.user_id = l.user_id`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "post_id", "user_id", "created_at",
			"u_id", "name", "last_name", "nick_name",
		}).AddRow(int64(1), int64(7), "auth-1", createdAt, int64(10), "Ana", "Gomez", "anag"))

	likes, err := svc.ListByPostWithUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("list by post: %v", err)
	}
	if len(likes) != 1 || likes[0].User.NickName != "anag" {
		t.Fatalf("unexpected likes: %+v", likes)
	}
}
