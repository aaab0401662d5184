package post

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func passAuth(c *fiber.Ctx) error { return c.Next() }

func newPostApp(t *testing.T) (*fiber.App, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	app := fiber.New()
	RegisterRoutes(app.Group("/posts"), NewService(mock), passAuth)
	return app, mock
}

func TestListPostsHandler(t *testing.T) {
	app, mock := newPostApp(t)

	mock.ExpectQuery(`GROUP BY p.id HAVING COUNT\(l.id\) >= \$1 AND COUNT\(l.id\) <= \$2`).
		WithArgs(5, 10).
		WillReturnRows(pgxmock.NewRows(postCols).
			AddRow(int64(1), "popular", "", "auth-1", time.Now(), 6))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts/?likes_min=5&likes_max=10", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v", err)
	}

	body, _ := io.ReadAll(resp.Body)
	var payload struct {
		Data  []Post  `json:"data"`
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Error != nil || len(payload.Data) != 1 || payload.Data[0].Likes != 6 {
		t.Fatalf("unexpected payload: %s", body)
	}
}

func TestListPostsWithUserHandler(t *testing.T) {
	app, mock := newPostApp(t)

	cols := append(append([]string{}, postCols...), "u_id", "u_name", "u_last_name", "u_nick_name")
	mock.ExpectQuery(`JOIN users u ON u.user_id = p.user_id`).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(int64(1), "hello", "", "auth-1", time.Now(), 0, int64(4), "Ada", "Lovelace", "ada"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts/?with_user=true", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list with user status: %v", err)
	}
}

func TestCreatePostHandler(t *testing.T) {
	app, mock := newPostApp(t)

	mock.ExpectQuery(`INSERT INTO posts`).
		WithArgs("hello", "/img/x.png", "auth-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), time.Now()))

	body, _ := json.Marshal(CreatePost{Description: "hello", ImgPath: "/img/x.png", UserID: "auth-1"})
	req := httptest.NewRequest(http.MethodPost, "/posts/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status: %v", err)
	}
}

func TestCreatePostMissingFields(t *testing.T) {
	app, _ := newPostApp(t)

	req := httptest.NewRequest(http.MethodPost, "/posts/", bytes.NewReader([]byte(`{"description":""}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}

func TestDeletePostHandler(t *testing.T) {
	app, mock := newPostApp(t)

	mock.ExpectExec(`DELETE FROM posts WHERE id=\$1`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/posts/3", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status: %v", err)
	}

	body, _ := io.ReadAll(resp.Body)
	var result struct {
		Success bool    `json:"success"`
		Error   *string `json:"error"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !result.Success || result.Error != nil {
		t.Fatalf("unexpected result: %s", body)
	}
}

func TestDeletePostNotFound(t *testing.T) {
	app, mock := newPostApp(t)

	mock.ExpectExec(`DELETE FROM posts WHERE id=\$1`).
		WithArgs(int64(404)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/posts/404", nil))
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found")
	}
}

func TestGetPostNotFound(t *testing.T) {
	app, mock := newPostApp(t)

	mock.ExpectQuery(`WHERE p.id=\$1 GROUP BY p.id`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(postCols))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts/5", nil))
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found")
	}
}
