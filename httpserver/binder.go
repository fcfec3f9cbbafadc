package httpserver

import (
	"mime"
	"strings"

	"github.com/labstack/echo/v4"
)

// Binder extends echo's DefaultBinder with structured JSON media types such
// as application/vnd.pg6100.movies+json, which the default binder rejects
// with 415.
type Binder struct {
	echo.DefaultBinder
}

func (b *Binder) Bind(i interface{}, c echo.Context) error {
	req := c.Request()
	if req.ContentLength == 0 || !isStructuredJSON(req.Header.Get(echo.HeaderContentType)) {
		return b.DefaultBinder.Bind(i, c)
	}

	if err := b.BindPathParams(c, i); err != nil {
		return err
	}
	return c.Echo().JSONSerializer.Deserialize(c, i)
}

func isStructuredJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json")
}
