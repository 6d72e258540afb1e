// Package navigator moves the user to another view by opening a URL outside
// the terminal.
package navigator

import (
	"fmt"
	"io"
	"net/url"
	"sync"

	"github.com/pkg/browser"
)

// Navigator opens the next step of the flow.
type Navigator interface {
	Open(target string) error
}

func init() {
	// The browser launcher inherits our stdio by default, which would draw
	// over the alt screen.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// Browser opens URLs with the system browser.
type Browser struct{}

func (Browser) Open(target string) error {
	if err := checkURL(target); err != nil {
		return err
	}
	if err := browser.OpenURL(target); err != nil {
		return fmt.Errorf("failed to open %s: %w", target, err)
	}
	return nil
}

// Noop accepts every URL and does nothing.
type Noop struct{}

func (Noop) Open(target string) error { return checkURL(target) }

// Recorder remembers every opened URL.
type Recorder struct {
	mu     sync.Mutex
	opened []string
	// Err, when set, is returned from Open.
	Err error
}

func (r *Recorder) Open(target string) error {
	if err := checkURL(target); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.opened = append(r.opened, target)
	return nil
}

// Opened returns the URLs opened so far.
func (r *Recorder) Opened() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.opened...)
}

func checkURL(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", target, err)
	}
	switch u.Scheme {
	case "http", "https", "file":
		return nil
	default:
		return fmt.Errorf("refusing to open %q: unsupported scheme %q", target, u.Scheme)
	}
}
