package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"backend-snapfeed/internal/db"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, last_name, email, nick_name, age, gender, profile_image, is_admin, user_id, created_at`

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) List(ctx context.Context, f Filters) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	var clauses []string
	var args []any

	addClause := func(cond string, val any) {
		args = append(args, val)
		clauses = append(clauses, fmt.Sprintf(cond, len(args)))
	}

	if f.Name != "" {
		addClause("name ILIKE $%d", "%"+f.Name+"%")
	}
	if f.Email != "" {
		addClause("email ILIKE $%d", "%"+f.Email+"%")
	}
	if f.NickName != "" {
		addClause("nick_name ILIKE $%d", "%"+f.NickName+"%")
	}
	if f.Gender != "" {
		addClause("gender = $%d", f.Gender)
	}
	if f.AgeMin > 0 {
		addClause("age >= $%d", f.AgeMin)
	}
	if f.AgeMax > 0 {
		addClause("age <= $%d", f.AgeMax)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	return s.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (s *Service) GetByAuthID(ctx context.Context, authID string) (User, error) {
	return s.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE user_id=$1`, authID)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return s.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

func (s *Service) getOne(ctx context.Context, query string, arg any) (User, error) {
	return scanUser(s.db.QueryRow(ctx, query, arg))
}

func (s *Service) Create(ctx context.Context, input CreateUser) (User, error) {
	u := User{
		Name:         input.Name,
		LastName:     input.LastName,
		Email:        input.Email,
		NickName:     input.NickName,
		Age:          input.Age,
		Gender:       input.Gender,
		ProfileImage: input.ProfileImage,
		AuthID:       input.AuthID,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO users (name, last_name, email, nick_name, age, gender, profile_image, user_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, is_admin, created_at
	`, u.Name, u.LastName, u.Email, u.NickName, u.Age, u.Gender, u.ProfileImage, u.AuthID)
	if err := row.Scan(&u.ID, &u.IsAdmin, &u.CreatedAt); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch UpdateUser) (User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if patch.Name != "" {
		u.Name = patch.Name
	}
	if patch.LastName != "" {
		u.LastName = patch.LastName
	}
	if patch.NickName != "" {
		u.NickName = patch.NickName
	}
	if patch.Age != 0 {
		u.Age = patch.Age
	}
	if patch.Gender != "" {
		u.Gender = patch.Gender
	}
	if patch.ProfileImage != "" {
		u.ProfileImage = patch.ProfileImage
	}

	_, err = s.db.Exec(ctx, `
		UPDATE users
		SET name=$2, last_name=$3, nick_name=$4, age=$5, gender=$6, profile_image=$7
		WHERE id=$1
	`, u.ID, u.Name, u.LastName, u.NickName, u.Age, u.Gender, u.ProfileImage)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	_, err := s.db.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	return err
}

// EmailExists reports whether a profile row with the exact email exists.
// No rows is a successful negative, not an error.
func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, `SELECT id FROM users WHERE email=$1`, email)
}

// NicknameExists reports whether a profile row with the exact nickname exists.
func (s *Service) NicknameExists(ctx context.Context, nick string) (bool, error) {
	return s.exists(ctx, `SELECT id FROM users WHERE nick_name=$1`, nick)
}

func (s *Service) exists(ctx context.Context, query, arg string) (bool, error) {
	var id int64
	err := s.db.QueryRow(ctx, query, arg).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.LastName, &u.Email, &u.NickName, &u.Age, &u.Gender, &u.ProfileImage, &u.IsAdmin, &u.AuthID, &u.CreatedAt)
	if err != nil {
		return User{}, err
	}
	return u, nil
}
