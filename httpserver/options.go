package httpserver

import (
	"errors"
	"fmt"
	"strings"

	"catalog/movie"
	"catalog/pkg/config"
	"catalog/user"

	"go.uber.org/zap"
)

type Options func(s *Server) error

// WithConfig applies listen port, CORS origins, rate limit and auth settings.
func WithConfig(cfg *config.Config) Options {
	return func(s *Server) error {
		if cfg == nil {
			return errors.New("httpserver: nil config")
		}
		s.Config = cfg
		if cfg.Port > 0 {
			s.Addr = fmt.Sprintf(":%d", cfg.Port)
		}
		if origins := splitOrigins(cfg.AllowOrigins); len(origins) > 0 {
			s.AllowOrigins = origins
		}
		return nil
	}
}

func WithLogger(l *zap.SugaredLogger) Options {
	return func(s *Server) error {
		if l == nil {
			return errors.New("httpserver: nil logger")
		}
		s.Logger = l
		return nil
	}
}

func WithMovieService(svc movie.Service) Options {
	return func(s *Server) error {
		s.MovieService = svc
		return nil
	}
}

func WithUserService(svc user.Service) Options {
	return func(s *Server) error {
		s.UserService = svc
		return nil
	}
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
