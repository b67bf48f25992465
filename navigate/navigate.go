// Package navigate carries out the side effects requested by the scene:
// opening link URLs and copying them to the clipboard.
package navigate

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/milk9111/portfolio3d/ecs"
)

var ErrInvalidURL = errors.New("navigate: invalid url")

// Navigator opens URLs and writes them to the clipboard.
type Navigator interface {
	Open(rawURL string) error
	Copy(text string) error
}

// Validate accepts absolute http and https URLs only.
func Validate(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidURL, rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q: scheme %q", ErrInvalidURL, rawURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %q: missing host", ErrInvalidURL, rawURL)
	}
	return nil
}

// Execute runs cmds in order. Failures are logged and do not stop the rest.
// It returns the number of commands that succeeded.
func Execute(nav Navigator, cmds []ecs.Command, logger *slog.Logger) int {
	if logger == nil {
		logger = slog.Default()
	}
	ok := 0
	for _, cmd := range cmds {
		if err := execute(nav, cmd); err != nil {
			logger.Warn("command failed", "kind", cmd.Kind, "url", cmd.URL, "err", err)
			continue
		}
		logger.Info("command done", "kind", cmd.Kind, "url", cmd.URL)
		ok++
	}
	return ok
}

func execute(nav Navigator, cmd ecs.Command) error {
	if nav == nil {
		return errors.New("navigate: no navigator")
	}
	if err := Validate(cmd.URL); err != nil {
		return err
	}
	switch cmd.Kind {
	case ecs.CommandNavigate:
		return nav.Open(cmd.URL)
	case ecs.CommandCopyURL:
		return nav.Copy(cmd.URL)
	default:
		return fmt.Errorf("navigate: unknown command %q", cmd.Kind)
	}
}

// Recorder is a Navigator that only remembers what it was asked to do.
type Recorder struct {
	Opened []string
	Copied []string
}

func (r *Recorder) Open(rawURL string) error {
	r.Opened = append(r.Opened, rawURL)
	return nil
}

func (r *Recorder) Copy(text string) error {
	r.Copied = append(r.Copied, text)
	return nil
}
