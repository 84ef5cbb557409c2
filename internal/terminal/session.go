package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Session takes over the terminal for the duration of fn. The screen is
// initialized first and finalized exactly once when fn returns or panics;
// a panic is re-raised after the terminal has been restored.
func Session(s tcell.Screen, fn func() error) error {
	if err := s.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}

	defer func() {
		r := recover()
		s.Fini()
		if r != nil {
			panic(r)
		}
	}()

	return fn()
}
