package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrAlreadyRegistered  = errors.New("user already registered")
	ErrWeakPassword       = errors.New("password should be at least 6 characters")
	ErrNicknameTaken      = errors.New("nickname already in use")
)

// friendly maps known auth failures to user-facing messages. Anything not
// listed passes through verbatim.
var friendly = map[string]string{
	ErrInvalidCredentials.Error(): "incorrect email or password",
	ErrAlreadyRegistered.Error():  "that email is already registered",
	ErrWeakPassword.Error():       "password must be at least 6 characters",
	ErrNicknameTaken.Error():      "that nickname is already in use",
	"too many requests":           "too many attempts, try again later",
	"email not confirmed":         "confirm your email before signing in",
}

func Translate(err error) string {
	if err == nil {
		return ""
	}
	if msg, ok := friendly[err.Error()]; ok {
		return msg
	}
	return err.Error()
}
