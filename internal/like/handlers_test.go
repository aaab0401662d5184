package like

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
)

func authAs(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	}
}

func newLikeApp(t *testing.T) (*fiber.App, pgxmock.PgxPoolIface) {
	t.Helper()
	mock := newLikeMock(t)
	t.Cleanup(mock.Close)

	app := fiber.New()
	RegisterRoutes(app.Group("/likes"), NewPostLikes(mock), NewCommentLikes(mock), authAs("auth-1"))
	return app, mock
}

func TestToggleHandler(t *testing.T) {
	app, mock := newLikeApp(t)

	mock.ExpectExec(`DELETE FROM likes_posts WHERE user_id=\$1 AND post_id=\$2`).
		WithArgs("auth-1", int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`INSERT INTO likes_posts \(user_id, post_id\)`).
		WithArgs("auth-1", int64(7)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/likes/posts/7/toggle", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("toggle status: %v", err)
	}

	body, _ := io.ReadAll(resp.Body)
	var payload struct {
		Data struct {
			Liked bool `json:"liked"`
		} `json:"data"`
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Error != nil || !payload.Data.Liked {
		t.Fatalf("unexpected envelope: %s", body)
	}
}

func TestLikeHandlerConflict(t *testing.T) {
	app, mock := newLikeApp(t)

	mock.ExpectQuery(`INSERT INTO likes_posts \(user_id, post_id\)`).
		WithArgs("auth-1", int64(7)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/likes/posts/7", nil))
	if err != nil || resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected conflict, got %v %d", err, resp.StatusCode)
	}
}

func TestUnlikeHandlerNotFound(t *testing.T) {
	app, mock := newLikeApp(t)

	mock.ExpectExec(`DELETE FROM likes_posts WHERE user_id=\$1 AND post_id=\$2`).
		WithArgs("auth-1", int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/likes/posts/7", nil))
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found")
	}
}

func TestBatchCountsHandler(t *testing.T) {
	app, mock := newLikeApp(t)

	mock.ExpectQuery(`WHERE post_id = ANY\(\$1\)`).
		WithArgs([]int64{1, 2, 3}).
		WillReturnRows(pgxmock.NewRows([]string{"post_id", "count"}).
			AddRow(int64(1), 2).
			AddRow(int64(3), 5))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/likes/posts/counts?ids=1,2,3", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("counts status: %v", err)
	}

	body, _ := io.ReadAll(resp.Body)
	var payload struct {
		Data map[string]int `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Data["1"] != 2 || payload.Data["3"] != 5 {
		t.Fatalf("unexpected counts: %s", body)
	}
	if _, ok := payload.Data["2"]; ok {
		t.Fatalf("zero-like post should be absent: %s", body)
	}
}

func TestBatchCountsBadIDs(t *testing.T) {
	app, _ := newLikeApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/likes/posts/counts?ids=1,x", nil))
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}

func TestCountHandler(t *testing.T) {
	app, mock := newLikeApp(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM likes_posts WHERE post_id=\$1`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(4))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/likes/posts/7/count", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("count status: %v", err)
	}
}
