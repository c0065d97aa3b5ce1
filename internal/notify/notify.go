// Package notify delivers session notifications to the desktop.
package notify

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/sujoyonweb/blok/internal/store"
)

var ErrPermissionDenied = errors.New("notification permission denied")

// Notifier is a platform notification backend.
type Notifier interface {
	// Request asks for permission to notify. Repeated calls after a grant are cheap.
	Request() error
	Send(title, body string) error
}

// Service gates a Notifier behind the persisted user toggle.
type Service struct {
	kv  store.KV
	n   Notifier
	log *log.Logger
}

func NewService(kv store.KV, n Notifier, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{kv: kv, n: n, log: logger}
}

// Enabled reports the persisted toggle.
func (s *Service) Enabled() bool {
	return store.Get(s.kv, store.KeyNotifications, false)
}

// SetEnabled flips the toggle. Turning it on requests permission first; a denial
// leaves notifications off.
func (s *Service) SetEnabled(on bool) error {
	if on {
		if s.n == nil {
			return ErrPermissionDenied
		}
		if err := s.n.Request(); err != nil {
			if serr := s.kv.Save(store.KeyNotifications, false); serr != nil {
				s.log.Warn("save notification toggle", "err", serr)
			}
			return fmt.Errorf("enable notifications: %w", err)
		}
	}
	if err := s.kv.Save(store.KeyNotifications, on); err != nil {
		return fmt.Errorf("save notification toggle: %w", err)
	}
	return nil
}

// Notify sends when enabled. Failures are logged and otherwise ignored.
func (s *Service) Notify(title, body string) {
	if s.n == nil || !s.Enabled() {
		return
	}
	if err := s.n.Send(title, body); err != nil {
		s.log.Warn("send notification", "title", title, "err", err)
	}
}
