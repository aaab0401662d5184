package auth

import (
	"regexp"
	"strings"
)

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nicknameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	nameRe     = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ\s]{2,50}$`)
)

// ValidateLogin returns per-field messages; an empty map means valid.
func ValidateLogin(req LoginRequest) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(req.Email) == "" {
		errs["email"] = "email is required"
	} else if !emailRe.MatchString(req.Email) {
		errs["email"] = "enter a valid email"
	}
	if req.Password == "" {
		errs["password"] = "password is required"
	}
	return errs
}

func ValidateRegister(req RegisterRequest) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(req.Email) == "" {
		errs["email"] = "email is required"
	} else if !emailRe.MatchString(req.Email) {
		errs["email"] = "enter a valid email"
	}

	if strings.TrimSpace(req.NickName) == "" {
		errs["nick_name"] = "nickname is required"
	} else if !nicknameRe.MatchString(req.NickName) {
		errs["nick_name"] = "nickname must be 3-20 characters of letters, numbers and underscores"
	}

	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = "name is required"
	} else if !nameRe.MatchString(strings.TrimSpace(req.Name)) {
		errs["name"] = "name must be 2-50 characters of letters and spaces"
	}
	if req.LastName != "" && !nameRe.MatchString(strings.TrimSpace(req.LastName)) {
		errs["last_name"] = "last name must be 2-50 characters of letters and spaces"
	}

	if req.Password == "" {
		errs["password"] = "password is required"
	} else if len(req.Password) < 6 {
		errs["password"] = ErrWeakPassword.Error()
	}
	if req.ConfirmPassword == "" {
		errs["confirm_password"] = "confirm your password"
	} else if req.Password != req.ConfirmPassword {
		errs["confirm_password"] = "passwords do not match"
	}
	return errs
}
