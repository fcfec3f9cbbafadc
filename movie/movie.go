package movie

import (
	"strings"
	"time"

	"catalog/errs"
)

// MaxTextLength bounds title, director and category.
const MaxTextLength = 128

var (
	ErrMovieNotFound      = errs.Errorf(errs.ENOTFOUND, "movie: not found")
	ErrIDMismatch         = errs.Errorf(errs.ECONFLICT, "movie: id cannot be changed")
	ErrIDNotAllowed       = errs.Errorf(errs.EINVALID, "movie: id is assigned by the server")
	ErrInvalidTitle       = errs.Errorf(errs.EINVALID, "movie: invalid title")
	ErrInvalidDirector    = errs.Errorf(errs.EINVALID, "movie: invalid director")
	ErrInvalidCategory    = errs.Errorf(errs.EINVALID, "movie: invalid category")
	ErrInvalidScreening   = errs.Errorf(errs.EINVALID, "movie: screening times are required")
	ErrScreeningOrder     = errs.Errorf(errs.EINVALID, "movie: screening ends before it starts")
	ErrConstraintViolated = errs.Errorf(errs.EINVALID, "movie: constraint violation")
)

type Movie struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	Director          string    `json:"director"`
	Category          string    `json:"category"`
	ScreeningFromTime time.Time `json:"screeningFromTime"`
	ScreeningToTime   time.Time `json:"screeningToTime"`
}

func (m Movie) Validate() error {
	if err := validateTitle(m.Title); err != nil {
		return err
	}
	if !validText(m.Director) {
		return ErrInvalidDirector
	}
	if !validText(m.Category) {
		return ErrInvalidCategory
	}
	if m.ScreeningFromTime.IsZero() || m.ScreeningToTime.IsZero() {
		return ErrInvalidScreening
	}
	if m.ScreeningToTime.Before(m.ScreeningFromTime) {
		return ErrScreeningOrder
	}
	return nil
}

// Filter carries the list query. Only the first non-blank of Title, Director
// and Category is applied; ScreeningFrom and ScreeningTo are accepted but
// never narrow the result.
type Filter struct {
	Title         string
	Director      string
	Category      string
	ScreeningFrom *time.Time
	ScreeningTo   *time.Time
}

func validateTitle(title string) error {
	if !validText(title) {
		return ErrInvalidTitle
	}
	return nil
}

func validText(s string) bool {
	return strings.TrimSpace(s) != "" && len([]rune(s)) <= MaxTextLength
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
