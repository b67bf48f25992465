//go:build !js

package navigate

import (
	"fmt"
	"sync"

	"github.com/pkg/browser"
	"golang.design/x/clipboard"
)

// System opens URLs in the default browser and copies through the OS
// clipboard.
type System struct {
	once    sync.Once
	clipErr error
}

func NewSystem() *System {
	return &System{}
}

func (s *System) Open(rawURL string) error {
	if err := browser.OpenURL(rawURL); err != nil {
		return fmt.Errorf("navigate: open %s: %w", rawURL, err)
	}
	return nil
}

func (s *System) Copy(text string) error {
	s.once.Do(func() {
		s.clipErr = clipboard.Init()
	})
	if s.clipErr != nil {
		return fmt.Errorf("navigate: clipboard unavailable: %w", s.clipErr)
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
