package httpserver

import (
	"strconv"
	"strings"
	"time"

	"catalog/errs"
	"catalog/movie"
	"catalog/user"
)

// timestampLayouts are tried in order. Seconds are optional on input.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
}

// MovieDTO is the wire form of a movie. Every field is optional so that
// missing values can be told apart from empty ones.
type MovieDTO struct {
	MovieID           *string `json:"movieId,omitempty"`
	Title             *string `json:"title,omitempty" validate:"required"`
	Director          *string `json:"director,omitempty" validate:"required"`
	Category          *string `json:"category,omitempty" validate:"required"`
	ScreeningFromTime *string `json:"screeningFromTime,omitempty" validate:"required"`
	ScreeningToTime   *string `json:"screeningToTime,omitempty" validate:"required"`
}

type UserDTO struct {
	UserID   *string `json:"userId,omitempty"`
	Username *string `json:"username,omitempty" validate:"required"`
	Mail     *string `json:"mail,omitempty" validate:"required"`
	Address  *string `json:"address,omitempty" validate:"required"`
}

func toMovieDTO(m movie.Movie) MovieDTO {
	return MovieDTO{
		MovieID:           stringPtr(strconv.FormatInt(m.ID, 10)),
		Title:             stringPtr(m.Title),
		Director:          stringPtr(m.Director),
		Category:          stringPtr(m.Category),
		ScreeningFromTime: stringPtr(formatTimestamp(m.ScreeningFromTime)),
		ScreeningToTime:   stringPtr(formatTimestamp(m.ScreeningToTime)),
	}
}

func toMovieDTOs(movies []movie.Movie) []MovieDTO {
	dtos := make([]MovieDTO, 0, len(movies))
	for _, m := range movies {
		dtos = append(dtos, toMovieDTO(m))
	}
	return dtos
}

// toMovie converts the payload. Missing fields stay zero and are rejected by
// movie.Validate; only malformed timestamps fail here.
func (d MovieDTO) toMovie(id int64) (movie.Movie, error) {
	m := movie.Movie{
		ID:       id,
		Title:    deref(d.Title),
		Director: deref(d.Director),
		Category: deref(d.Category),
	}

	var err error
	if d.ScreeningFromTime != nil {
		if m.ScreeningFromTime, err = parseTimestamp("screeningFromTime", *d.ScreeningFromTime); err != nil {
			return movie.Movie{}, err
		}
	}
	if d.ScreeningToTime != nil {
		if m.ScreeningToTime, err = parseTimestamp("screeningToTime", *d.ScreeningToTime); err != nil {
			return movie.Movie{}, err
		}
	}
	return m, nil
}

func toUserDTO(u user.User) UserDTO {
	return UserDTO{
		UserID:   stringPtr(strconv.FormatInt(u.ID, 10)),
		Username: stringPtr(u.Username),
		Mail:     stringPtr(u.Mail),
		Address:  stringPtr(u.Address),
	}
}

func toUserDTOs(users []user.User) []UserDTO {
	dtos := make([]UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, toUserDTO(u))
	}
	return dtos
}

func parseTimestamp(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errs.Errorf(errs.EINVALID, "%s: invalid timestamp %q", field, raw)
}

// parseOptionalTimestamp returns nil for an absent query parameter.
func parseOptionalTimestamp(field, raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := parseTimestamp(field, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil
}

func stringPtr(s string) *string {
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
