package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"backend-snapfeed/internal/db"
	"backend-snapfeed/internal/session"
	"backend-snapfeed/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour

	uniqueViolation = "23505"
)

const (
	EventSignedIn  = "signed_in"
	EventSignedOut = "signed_out"
)

type Service struct {
	secret   []byte
	db       db.Querier
	users    *user.Service
	sessions *session.Store

	// Notify, when set, receives auth state changes per account.
	Notify func(accountID, event string)
}

func NewService(secret string, db db.Querier, users *user.Service) *Service {
	return &Service{
		secret: []byte(secret),
		db:     db,
		users:  users,
	}
}

// SetSessions attaches the session cache. The store's loader usually points
// back at LoadSession, so this runs after both are constructed.
func (s *Service) SetSessions(store *session.Store) {
	s.sessions = store
}

// Register creates the identity row and issues tokens. The profile row is
// written best effort afterwards: if it fails the registration still
// succeeds, since the identity already exists.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (user.User, TokenResponse, error) {
	if req.Email == "" || req.NickName == "" || req.Password == "" {
		return user.User{}, TokenResponse{}, errors.New("email, nickname, password required")
	}
	if len(req.Password) < 6 {
		return user.User{}, TokenResponse{}, ErrWeakPassword
	}

	acc, err := s.createAccount(ctx, req.Email, req.Password)
	if err != nil {
		return user.User{}, TokenResponse{}, err
	}

	tokens, err := s.GenerateTokens(ctx, acc.ID)
	if err != nil {
		return user.User{}, TokenResponse{}, err
	}

	profile, profileErr := s.users.Create(ctx, user.CreateUser{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		NickName: req.NickName,
		AuthID:   acc.ID,
	})
	if profileErr != nil {
		log.Printf("profile create failed for account %s: %v", acc.ID, profileErr)
		profile = user.User{}
	}

	if s.sessions != nil {
		if err := s.sessions.Set(ctx, tokens.AccessToken, profile); err != nil {
			log.Printf("session cache set failed: %v", err)
		}
	}
	s.notify(acc.ID, EventSignedIn)
	return profile, tokens, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (user.User, TokenResponse, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at
		FROM auth_accounts WHERE email=$1
	`, req.Email)

	var acc Account
	if err := row.Scan(&acc.ID, &acc.Email, &acc.PasswordHash, &acc.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, TokenResponse{}, ErrInvalidCredentials
		}
		return user.User{}, TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(req.Password)); err != nil {
		return user.User{}, TokenResponse{}, ErrInvalidCredentials
	}

	tokens, err := s.GenerateTokens(ctx, acc.ID)
	if err != nil {
		return user.User{}, TokenResponse{}, err
	}

	profile, err := s.users.GetByEmail(ctx, acc.Email)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Printf("profile lookup failed for %s: %v", acc.Email, err)
		}
		profile = user.User{}
	}

	if s.sessions != nil {
		if err := s.sessions.Set(ctx, tokens.AccessToken, profile); err != nil {
			log.Printf("session cache set failed: %v", err)
		}
	}
	s.notify(acc.ID, EventSignedIn)
	return profile, tokens, nil
}

// Logout revokes the account's refresh tokens and drops the cached session.
// An unparseable token still clears the cache.
func (s *Service) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.parseToken(accessToken)
	if err == nil {
		_, err := s.db.Exec(ctx, `
			UPDATE refresh_tokens SET revoked_at=now()
			WHERE account_id=$1 AND revoked_at IS NULL
		`, claims.AccountID)
		if err != nil {
			return err
		}
		s.notify(claims.AccountID, EventSignedOut)
	}

	if s.sessions != nil {
		if err := s.sessions.Clear(ctx, accessToken); err != nil {
			return err
		}
	}
	return nil
}

// LoadSession resolves an access token into a session record. Invalid or
// unknown tokens mean "no session", not an error.
func (s *Service) LoadSession(ctx context.Context, token string) (*session.Record, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, nil
	}

	var email string
	err = s.db.QueryRow(ctx, `
		SELECT email FROM auth_accounts WHERE id=$1
	`, claims.AccountID).Scan(&email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	profile, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		profile = user.User{}
	}
	return &session.Record{User: profile, Authenticated: true}, nil
}

func (s *Service) CurrentSession(ctx context.Context, token string) (*session.Record, error) {
	if token == "" {
		return nil, nil
	}
	if s.sessions != nil {
		return s.sessions.Init(ctx, token)
	}
	return s.LoadSession(ctx, token)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenResponse, error) {
	accountID, err := s.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return TokenResponse{}, err
	}
	return s.GenerateTokens(ctx, accountID)
}

// AdminCreateUser provisions an account plus profile without signing anyone
// in. The nickname is pre-checked so the identity row is not created for a
// doomed profile.
func (s *Service) AdminCreateUser(ctx context.Context, req RegisterRequest) (user.User, error) {
	taken, err := s.users.NicknameExists(ctx, req.NickName)
	if err != nil {
		return user.User{}, err
	}
	if taken {
		return user.User{}, ErrNicknameTaken
	}
	if len(req.Password) < 6 {
		return user.User{}, ErrWeakPassword
	}

	acc, err := s.createAccount(ctx, req.Email, req.Password)
	if err != nil {
		return user.User{}, err
	}

	profile, err := s.users.Create(ctx, user.CreateUser{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		NickName: req.NickName,
		AuthID:   acc.ID,
	})
	if err != nil {
		log.Printf("profile create failed for account %s: %v", acc.ID, err)
		return user.User{}, nil
	}
	return profile, nil
}

// AdminDeleteUser removes the profile row, then tears down the identity side
// best effort: a failure there is logged, not surfaced.
func (s *Service) AdminDeleteUser(ctx context.Context, id int64) error {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	if u.AuthID != "" {
		if _, err := s.db.Exec(ctx, `
			DELETE FROM refresh_tokens WHERE account_id=$1
		`, u.AuthID); err != nil {
			log.Printf("refresh token cleanup failed for account %s: %v", u.AuthID, err)
		}
		if _, err := s.db.Exec(ctx, `
			DELETE FROM auth_accounts WHERE id=$1
		`, u.AuthID); err != nil {
			log.Printf("account delete failed for %s: %v", u.AuthID, err)
		}
	}
	return nil
}

func (s *Service) createAccount(ctx context.Context, email, password string) (Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	acc := Account{ID: uuid.NewString(), Email: email, PasswordHash: string(hash)}
	row := s.db.QueryRow(ctx, `
		INSERT INTO auth_accounts (id, email, password_hash)
		VALUES ($1,$2,$3)
		RETURNING created_at
	`, acc.ID, acc.Email, acc.PasswordHash)
	if err := row.Scan(&acc.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Account{}, ErrAlreadyRegistered
		}
		return Account{}, err
	}
	return acc, nil
}

func (s *Service) GenerateTokens(ctx context.Context, accountID string) (TokenResponse, error) {
	access, err := s.signToken(accountID, accessTokenTTL)
	if err != nil {
		return TokenResponse{}, err
	}

	refresh, err := s.signToken(accountID, refreshTokenTTL)
	if err != nil {
		return TokenResponse{}, err
	}

	if err := s.saveRefreshToken(ctx, refresh, accountID, refreshTokenTTL); err != nil {
		return TokenResponse{}, err
	}

	return TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(accessTokenTTL.Seconds()),
	}, nil
}

func (s *Service) ValidateRefreshToken(ctx context.Context, token string) (string, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return "", err
	}

	accountID, expiresAt, err := s.lookupRefreshToken(ctx, token)
	if err != nil || accountID != claims.AccountID || time.Now().After(expiresAt) {
		return "", errors.New("refresh token invalid")
	}
	return claims.AccountID, nil
}

func (s *Service) ValidateAccessToken(token string) (string, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return "", err
	}
	return claims.AccountID, nil
}

func (s *Service) signToken(accountID string, ttl time.Duration) (string, error) {
	claims := Claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) parseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("token invalid")
	}
	return claims, nil
}

func (s *Service) saveRefreshToken(ctx context.Context, token, accountID string, ttl time.Duration) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO refresh_tokens (id, account_id, token, expires_at)
		VALUES ($1,$2,$3,$4)
	`, uuid.NewString(), accountID, token, time.Now().Add(ttl))
	return err
}

func (s *Service) lookupRefreshToken(ctx context.Context, token string) (string, time.Time, error) {
	row := s.db.QueryRow(ctx, `
		SELECT account_id, expires_at
		FROM refresh_tokens
		WHERE token = $1 AND revoked_at IS NULL
	`, token)
	var accountID string
	var expiresAt time.Time
	if err := row.Scan(&accountID, &expiresAt); err != nil {
		return "", time.Time{}, err
	}
	return accountID, expiresAt, nil
}

func (s *Service) notify(accountID, event string) {
	if s.Notify != nil {
		s.Notify(accountID, event)
	}
}
