package httpserver

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"catalog/errs"
	"catalog/movie"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		raw     string
		want    time.Time
		wantErr bool
	}{
		{raw: "2020-01-01T10:00:00Z", want: time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC)},
		{raw: "2020-01-01T10:00Z", want: time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC)},
		{raw: "2020-01-01T12:30:15+02:00", want: time.Date(2020, 1, 1, 10, 30, 15, 0, time.UTC)},
		{raw: " 2020-01-01T10:00:00Z ", want: time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC)},
		{raw: "2020-01-01", wantErr: true},
		{raw: "2020-01-01T10:00:00", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseTimestamp("screeningFromTime", tt.raw)

			if tt.wantErr {
				assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
				assert.Contains(t, errs.ErrorMessage(err), "screeningFromTime")
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseOptionalTimestamp(t *testing.T) {
	got, err := parseOptionalTimestamp("screeningToTime", "  ")
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseOptionalTimestamp("screeningToTime", "2020-01-01T10:00:00Z")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2020, got.Year())
}

func TestParseID(t *testing.T) {
	tests := []struct {
		raw    string
		want   int64
		wantOK bool
	}{
		{raw: "1", want: 1, wantOK: true},
		{raw: "-3", want: -3, wantOK: true},
		{raw: "007", want: 7, wantOK: true},
		{raw: "", wantOK: false},
		{raw: "1.5", wantOK: false},
		{raw: "9223372036854775808", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := parseID(tt.raw)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMovieDTO_RoundTrip(t *testing.T) {
	m := movie.Movie{
		ID:                12,
		Title:             "Heat",
		Director:          "Michael Mann",
		Category:          "Crime",
		ScreeningFromTime: time.Date(2021, 3, 4, 20, 0, 0, 0, time.UTC),
		ScreeningToTime:   time.Date(2021, 3, 4, 22, 50, 0, 0, time.UTC),
	}

	dto := toMovieDTO(m)
	assert.Equal(t, "12", *dto.MovieID)
	assert.Equal(t, "2021-03-04T20:00:00Z", *dto.ScreeningFromTime)

	back, err := dto.toMovie(12)
	require.NoError(t, err)
	assert.Equal(t, m, back)
}

func TestMovieDTO_ToMovie(t *testing.T) {
	t.Run("missing fields stay zero", func(t *testing.T) {
		title := "Heat"

		m, err := MovieDTO{Title: &title}.toMovie(1)

		require.NoError(t, err)
		assert.Equal(t, "Heat", m.Title)
		assert.True(t, m.ScreeningFromTime.IsZero())
		assert.ErrorIs(t, m.Validate(), movie.ErrInvalidDirector)
	})

	t.Run("bad end time names the field", func(t *testing.T) {
		from, to := "2021-03-04T20:00:00Z", "later"

		_, err := MovieDTO{ScreeningFromTime: &from, ScreeningToTime: &to}.toMovie(1)

		assert.Contains(t, errs.ErrorMessage(err), "screeningToTime")
	})
}

func TestToDTOs_NeverNil(t *testing.T) {
	assert.NotNil(t, toMovieDTOs(nil))
	assert.NotNil(t, toUserDTOs(nil))
}

func TestAcceptsMediaType(t *testing.T) {
	tests := []struct {
		accept string
		want   bool
	}{
		{accept: "application/vnd.pg6100.movies+json", want: true},
		{accept: "text/html, application/vnd.pg6100.movies+json;charset=UTF-8;version=1", want: true},
		{accept: "APPLICATION/VND.PG6100.MOVIES+JSON", want: true},
		{accept: "application/json", want: false},
		{accept: "*/*", want: false},
		{accept: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			assert.Equal(t, tt.want, acceptsMediaType(tt.accept, mimeMoviesBase))
		})
	}
}

func TestIsStructuredJSON(t *testing.T) {
	assert.True(t, isStructuredJSON(MIMEMoviesJSON))
	assert.True(t, isStructuredJSON("application/problem+json"))
	assert.False(t, isStructuredJSON("application/json"))
	assert.False(t, isStructuredJSON("text/plain"))
	assert.False(t, isStructuredJSON(";;"))
}

func TestBinder_VendorJSON(t *testing.T) {
	e := echo.New()
	body := `{"movieId":"3","title":"Heat"}`
	req := httptest.NewRequest(http.MethodPut, "/movies/3", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, MIMEMoviesJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	var dto MovieDTO
	require.NoError(t, new(Binder).Bind(&dto, c))

	assert.Equal(t, "3", deref(dto.MovieID))
	assert.Equal(t, "Heat", deref(dto.Title))
	assert.Nil(t, dto.Director)
}

func TestBinder_UnsupportedMediaType(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/movies", strings.NewReader("title=Heat&x"))
	req.Header.Set(echo.HeaderContentType, "application/octet-stream")
	c := e.NewContext(req, httptest.NewRecorder())

	var dto MovieDTO
	err := new(Binder).Bind(&dto, c)

	var he *echo.HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusUnsupportedMediaType, he.Code)
}

func TestReadText(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{body: "Heat", want: "Heat"},
		{body: "Heat\n", want: "Heat"},
		{body: "Heat\r\n", want: "Heat"},
		{body: "Heat\n\n", want: "Heat\n"},
		{body: " Heat ", want: " Heat "},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/movies/1/title", strings.NewReader(tt.body))
			c := echo.New().NewContext(req, httptest.NewRecorder())

			got, err := readText(c)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: movie.ErrIDMismatch, want: http.StatusConflict},
		{err: movie.ErrMovieNotFound, want: http.StatusNotFound},
		{err: movie.ErrInvalidTitle, want: http.StatusBadRequest},
		{err: errs.Errorf(errs.EUNAUTHORIZED, "no"), want: http.StatusUnauthorized},
		{err: echo.ErrMethodNotAllowed, want: http.StatusMethodNotAllowed},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(tt.err))
		})
	}
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "100010", errorCode(movie.ErrInvalidCategory, http.StatusBadRequest))
	assert.Equal(t, "100500", errorCode(errs.Errorf(errs.EINTERNAL, "x"), http.StatusInternalServerError))
	assert.Equal(t, "100415", errorCode(echo.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType))
	assert.Equal(t, defaultErrorCode, errorCode(errors.New("x"), 0))
}

func TestValidator(t *testing.T) {
	v := NewValidator()

	type payload struct {
		Name *string `json:"name" validate:"required"`
		Note string  `json:"note" validate:"notblank"`
	}

	name := "x"
	assert.NoError(t, v.Validate(&payload{Name: &name, Note: "n"}))

	err := v.Validate(&payload{Note: " "})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
	assert.Equal(t, "validation error: name failed on required; note failed on notblank", errs.ErrorMessage(err))
}
