package post

import (
	"context"
	"fmt"
	"strings"

	"backend-snapfeed/internal/db"

	"github.com/jackc/pgx/v5"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

const postSelect = `
	SELECT p.id, p.description, p.img_path, p.user_id, p.created_at, COUNT(l.id)::int AS likes
	FROM posts p
	LEFT JOIN likes_posts l ON l.post_id = p.id`

const postAuthorSelect = `
	SELECT p.id, p.description, p.img_path, p.user_id, p.created_at, COUNT(l.id)::int AS likes,
	       u.id, u.name, u.last_name, u.nick_name
	FROM posts p
	LEFT JOIN likes_posts l ON l.post_id = p.id
	JOIN users u ON u.user_id = p.user_id`

// filterClauses renders Filters into WHERE and HAVING fragments. Like-count
// bounds go into HAVING because the count only exists after grouping.
func filterClauses(f Filters, args []any) (where, having []string, outArgs []any) {
	outArgs = args

	add := func(dst *[]string, cond string, val any) {
		outArgs = append(outArgs, val)
		*dst = append(*dst, fmt.Sprintf(cond, len(outArgs)))
	}

	if f.Description != "" {
		add(&where, "p.description ILIKE $%d", "%"+f.Description+"%")
	}
	if !f.CreatedAfter.IsZero() {
		add(&where, "p.created_at >= $%d", f.CreatedAfter)
	}
	if !f.CreatedBefore.IsZero() {
		add(&where, "p.created_at <= $%d", f.CreatedBefore)
	}
	if f.LikesMin > 0 {
		add(&having, "COUNT(l.id) >= $%d", f.LikesMin)
	}
	if f.LikesMax > 0 {
		add(&having, "COUNT(l.id) <= $%d", f.LikesMax)
	}
	return where, having, outArgs
}

func assemble(base, groupBy string, where, having []string) string {
	query := base
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " GROUP BY " + groupBy
	if len(having) > 0 {
		query += " HAVING " + strings.Join(having, " AND ")
	}
	return query + " ORDER BY p.created_at DESC"
}

func (s *Service) List(ctx context.Context, f Filters) ([]Post, error) {
	where, having, args := filterClauses(f, nil)
	rows, err := s.db.Query(ctx, assemble(postSelect, "p.id", where, having), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Description, &p.ImgPath, &p.UserID, &p.CreatedAt, &p.Likes); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *Service) ListWithAuthor(ctx context.Context, f Filters) ([]PostWithAuthor, error) {
	where, having, args := filterClauses(f, nil)
	query := assemble(postAuthorSelect, "p.id, u.id, u.name, u.last_name, u.nick_name", where, having)
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []PostWithAuthor
	for rows.Next() {
		var p PostWithAuthor
		err := rows.Scan(&p.ID, &p.Description, &p.ImgPath, &p.UserID, &p.CreatedAt, &p.Likes,
			&p.Author.ID, &p.Author.Name, &p.Author.LastName, &p.Author.NickName)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *Service) GetByID(ctx context.Context, id int64) (Post, error) {
	var p Post
	row := s.db.QueryRow(ctx, postSelect+` WHERE p.id=$1 GROUP BY p.id`, id)
	if err := row.Scan(&p.ID, &p.Description, &p.ImgPath, &p.UserID, &p.CreatedAt, &p.Likes); err != nil {
		return Post{}, err
	}
	return p, nil
}

func (s *Service) GetByIDWithAuthor(ctx context.Context, id int64) (PostWithAuthor, error) {
	var p PostWithAuthor
	row := s.db.QueryRow(ctx, postAuthorSelect+` WHERE p.id=$1 GROUP BY p.id, u.id, u.name, u.last_name, u.nick_name`, id)
	err := row.Scan(&p.ID, &p.Description, &p.ImgPath, &p.UserID, &p.CreatedAt, &p.Likes,
		&p.Author.ID, &p.Author.Name, &p.Author.LastName, &p.Author.NickName)
	if err != nil {
		return PostWithAuthor{}, err
	}
	return p, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Post, error) {
	rows, err := s.db.Query(ctx, postSelect+` WHERE p.user_id=$1 GROUP BY p.id ORDER BY p.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Description, &p.ImgPath, &p.UserID, &p.CreatedAt, &p.Likes); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *Service) Create(ctx context.Context, input CreatePost) (Post, error) {
	p := Post{
		Description: input.Description,
		ImgPath:     input.ImgPath,
		UserID:      input.UserID,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO posts (description, img_path, user_id)
		VALUES ($1,$2,$3)
		RETURNING id, created_at
	`, p.Description, p.ImgPath, p.UserID)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return Post{}, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch UpdatePost) (Post, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Post{}, err
	}
	if patch.Description != "" {
		p.Description = patch.Description
	}
	if patch.ImgPath != "" {
		p.ImgPath = patch.ImgPath
	}

	_, err = s.db.Exec(ctx, `
		UPDATE posts SET description=$2, img_path=$3 WHERE id=$1
	`, p.ID, p.Description, p.ImgPath)
	if err != nil {
		return Post{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
