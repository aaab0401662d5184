package storage

import (
	"context"
	"errors"
	"time"

	"backend-snapfeed/internal/db"

	"github.com/google/uuid"
)

// Image kinds. The stored URL ends up in posts.img_path or
// users.profile_image respectively.
const (
	KindPostImage    = "post_image"
	KindProfileImage = "profile_image"
)

var ErrInvalidKind = errors.New("invalid image kind")

type Object struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	URL       string    `json:"url"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

type Service struct {
	db      db.Querier
	baseURL string
}

func NewService(db db.Querier, baseURL string) *Service {
	return &Service{db: db, baseURL: baseURL}
}

// SaveImage records an uploaded image reference and returns it.
func (s *Service) SaveImage(ctx context.Context, userID, fileName, kind string) (Object, error) {
	if kind != KindPostImage && kind != KindProfileImage {
		return Object{}, ErrInvalidKind
	}
	if fileName == "" {
		fileName = "upload"
	}

	obj := Object{
		ID:     uuid.NewString(),
		UserID: userID,
		URL:    s.baseURL + "/" + objectPath(userID, fileName),
		Kind:   kind,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO storage_objects (id, user_id, url, kind)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, obj.ID, obj.UserID, obj.URL, obj.Kind)
	if err := row.Scan(&obj.CreatedAt); err != nil {
		return Object{}, err
	}
	return obj, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Object, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, url, kind, created_at
		FROM storage_objects WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var objects []Object
	for rows.Next() {
		var o Object
		if err := rows.Scan(&o.ID, &o.UserID, &o.URL, &o.Kind, &o.CreatedAt); err != nil {
			return nil, err
		}
		objects = append(objects, o)
	}
	return objects, rows.Err()
}

func objectPath(userID, fileName string) string {
	return userID + "/" + fileName
}
