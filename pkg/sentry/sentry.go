package sentry

import (
	"os"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

// FlushTime bounds how long shutdown waits for buffered events.
var FlushTime = 2 * time.Second

// Sentry builds one event. The zero value reports to the global hub.
type Sentry struct {
	context echo.Context
	error   error
	level   sentrygo.Level
	extras  map[string]interface{}
	tags    map[string]string
}

func WithContext(c echo.Context) *Sentry {
	return new(Sentry).WithContext(c)
}

func (s *Sentry) WithContext(c echo.Context) *Sentry {
	s.context = c
	return s
}

func (s *Sentry) WithError(err error) *Sentry {
	s.error = err
	return s
}

func (s *Sentry) WithLevel(level sentrygo.Level) *Sentry {
	s.level = level
	return s
}

func (s *Sentry) WithExtras(extras map[string]interface{}) *Sentry {
	s.extras = extras
	return s
}

func (s *Sentry) WithTags(tags map[string]string) *Sentry {
	s.tags = tags
	return s
}

func (s *Sentry) Error(err error) {
	s.WithError(err).WithLevel(sentrygo.LevelError).sendError()
}

func enabled() bool {
	return os.Getenv("APP_ENV") != "local" && os.Getenv("SENTRY_DSN") != ""
}

func (s *Sentry) hub() *sentrygo.Hub {
	if s.context != nil {
		if hub := sentryecho.GetHubFromContext(s.context); hub != nil {
			return hub
		}
	}
	return sentrygo.CurrentHub()
}

func (s *Sentry) configure(scope *sentrygo.Scope) {
	scope.SetLevel(s.level)
	if s.extras != nil {
		scope.SetExtras(s.extras)
	}
	if s.tags != nil {
		scope.SetTags(s.tags)
	}
}

func (s *Sentry) sendError() {
	if !enabled() || s.error == nil {
		return
	}
	s.hub().WithScope(func(scope *sentrygo.Scope) {
		s.configure(scope)
		s.hub().CaptureException(s.error)
	})
}
