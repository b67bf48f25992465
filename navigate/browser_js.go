//go:build js

package navigate

import (
	"errors"
	"syscall/js"
)

// System navigates the hosting page and copies through navigator.clipboard.
type System struct{}

func NewSystem() *System {
	return &System{}
}

func (s *System) Open(rawURL string) error {
	loc := js.Global().Get("window").Get("location")
	if loc.IsUndefined() {
		return errors.New("navigate: no window.location")
	}
	loc.Set("href", rawURL)
	return nil
}

func (s *System) Copy(text string) error {
	clip := js.Global().Get("navigator").Get("clipboard")
	if clip.IsUndefined() {
		return errors.New("navigate: clipboard unavailable")
	}
	clip.Call("writeText", text)
	return nil
}
