package notify

import (
	"fmt"
	"sync"

	"github.com/gen2brain/beeep"
)

// Desktop notifies through the platform notification daemon.
type Desktop struct {
	AppName string

	once    sync.Once
	granted error
	send    func(title, message, icon string) error
}

func NewDesktop() *Desktop {
	return &Desktop{AppName: "blok", send: func(title, message, icon string) error {
		return beeep.Notify(title, message, icon)
	}}
}

// Request probes the daemon once. The outcome is cached for the life of the process.
func (d *Desktop) Request() error {
	d.once.Do(func() {
		if err := d.send(d.AppName, "Notifications enabled", ""); err != nil {
			d.granted = fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		}
	})
	return d.granted
}

func (d *Desktop) Send(title, body string) error {
	if err := d.Request(); err != nil {
		return err
	}
	if err := d.send(title, body, ""); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}
