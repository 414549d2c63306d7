package game

import (
	"fmt"
	"iter"

	"github.com/decker502/launchpanel/pkg/components"
	"github.com/decker502/launchpanel/pkg/config"
)

// ButtonRegistry owns the ordered button list for the lifetime of the panel.
// It is built once before the main loop and never mutated afterwards.
//
// The registry is not safe for concurrent use; it belongs to the loop goroutine.
type ButtonRegistry struct {
	buttons  []components.LauncherButton
	released bool
}

// NewButtonRegistry creates a registry holding a private copy of buttons.
// More than config.MaxButtons entries is a programming error.
func NewButtonRegistry(buttons []components.LauncherButton) (*ButtonRegistry, error) {
	if len(buttons) > config.MaxButtons {
		return nil, fmt.Errorf("registry holds at most %d buttons, got %d", config.MaxButtons, len(buttons))
	}

	owned := make([]components.LauncherButton, len(buttons), config.MaxButtons)
	copy(owned, buttons)
	return &ButtonRegistry{buttons: owned}, nil
}

// Len returns the number of buttons.
func (r *ButtonRegistry) Len() int {
	return len(r.buttons)
}

// Cap returns the maximum number of buttons a registry can hold.
func (r *ButtonRegistry) Cap() int {
	return config.MaxButtons
}

// At returns the button at position i.
func (r *ButtonRegistry) At(i int) (components.LauncherButton, bool) {
	if i < 0 || i >= len(r.buttons) {
		return components.LauncherButton{}, false
	}
	return r.buttons[i], true
}

// All iterates the buttons in registry order. Buttons are yielded by value.
func (r *ButtonRegistry) All() iter.Seq2[int, components.LauncherButton] {
	return func(yield func(int, components.LauncherButton) bool) {
		for i, b := range r.buttons {
			if !yield(i, b) {
				return
			}
		}
	}
}

// Release drops the buttons at shutdown. Releasing twice is a no-op and a
// released registry behaves as an empty one.
func (r *ButtonRegistry) Release() {
	if r.released {
		return
	}
	r.buttons = nil
	r.released = true
}

// Released reports whether Release has been called.
func (r *ButtonRegistry) Released() bool {
	return r.released
}
