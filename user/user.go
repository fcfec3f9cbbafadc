package user

import (
	"strings"

	"catalog/errs"
)

const maxFieldLength = 128

var (
	ErrInvalidUsername    = errs.Errorf(errs.EINVALID, "user: invalid username")
	ErrInvalidMail        = errs.Errorf(errs.EINVALID, "user: invalid mail")
	ErrInvalidAddress     = errs.Errorf(errs.EINVALID, "user: invalid address")
	ErrUserNotFound       = errs.Errorf(errs.ENOTFOUND, "user: not found")
	ErrUsernameTaken      = errs.Errorf(errs.ECONFLICT, "user: username already exists")
	ErrConstraintViolated = errs.Errorf(errs.EINVALID, "user: constraint violation")
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Mail     string `json:"mail"`
	Address  string `json:"address"`
}

func (u User) Validate() error {
	if err := validateUsername(u.Username); err != nil {
		return err
	}
	if !validField(u.Mail) {
		return ErrInvalidMail
	}
	if !validField(u.Address) {
		return ErrInvalidAddress
	}
	return nil
}

// Filter selects users by exact field value. Username wins over Mail, Mail
// over Address; an empty filter matches everyone.
type Filter struct {
	Username string
	Mail     string
	Address  string
}

func validateUsername(username string) error {
	if !validField(username) {
		return ErrInvalidUsername
	}
	return nil
}

func validField(s string) bool {
	return strings.TrimSpace(s) != "" && len([]rune(s)) <= maxFieldLength
}
