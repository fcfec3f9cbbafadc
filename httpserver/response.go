package httpserver

import (
	"errors"
	"fmt"
	"mime"
	"strings"

	"catalog/errs"

	"github.com/labstack/echo/v4"
)

const (
	successMessage   = "OK"
	defaultErrorCode = "100500"

	// MIMEMoviesJSON is the versioned vendor type of the movie API.
	MIMEMoviesJSON = "application/vnd.pg6100.movies+json;charset=UTF-8;version=1"
	mimeMoviesBase = "application/vnd.pg6100.movies+json"
)

type APIResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Result  interface{} `json:"result,omitempty"`
	Info    string      `json:"info,omitempty"`
}

func writeSuccess(c echo.Context, status int, result interface{}) error {
	return c.JSON(status, APIResponse{
		Code:    fmt.Sprintf("%d", status),
		Message: successMessage,
		Result:  result,
	})
}

func writeError(c echo.Context, status int, message string, err error) error {
	return c.JSON(status, APIResponse{
		Code:    errorCode(err, status),
		Message: message,
	})
}

// writeMovies writes body as JSON, using the vendor media type when the
// client asked for it.
func writeMovies(c echo.Context, status int, body interface{}) error {
	if !acceptsMediaType(c.Request().Header.Get(echo.HeaderAccept), mimeMoviesBase) {
		return c.JSON(status, body)
	}

	c.Response().Header().Set(echo.HeaderContentType, MIMEMoviesJSON)
	c.Response().WriteHeader(status)
	return c.Echo().JSONSerializer.Serialize(c, body, "")
}

func acceptsMediaType(accept, mediaType string) bool {
	for _, part := range strings.Split(accept, ",") {
		mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && strings.EqualFold(mt, mediaType) {
			return true
		}
	}
	return false
}

func errorCode(err error, status int) string {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case errs.EINVALID:
			return "100010"
		case errs.ENOTFOUND:
			return "100404"
		case errs.ECONFLICT:
			return "100409"
		case errs.EUNAUTHORIZED:
			return "100401"
		case errs.ENOTIMPLEMENTED:
			return "100501"
		case errs.EINTERNAL:
			return defaultErrorCode
		}
	}

	if status != 0 {
		return fmt.Sprintf("100%03d", status)
	}
	return defaultErrorCode
}
