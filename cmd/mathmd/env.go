package main

import (
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Environment holds injectable dependencies for testability.
// Includes I/O streams, time, and terminal detection.
type Environment struct {
	Now    func() time.Time
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdinIsTerminal is true when nothing is piped in; a bare 'mathmd'
	// then reports missing input instead of blocking on the keyboard.
	StdinIsTerminal bool

	// Color enables colorized status words. --no-color turns it off.
	Color bool
}

// DefaultEnv returns the production environment bound to the process streams.
func DefaultEnv() *Environment {
	return &Environment{
		Now:             time.Now,
		Stdin:           os.Stdin,
		Stdout:          os.Stdout,
		Stderr:          os.Stderr,
		StdinIsTerminal: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
		Color:           !color.NoColor,
	}
}

// palette colorizes status words. Each color is forced on or off so output
// does not depend on fatih/color's global terminal detection.
type palette struct {
	failed  *color.Color
	changed *color.Color
	ok      *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		failed:  color.New(color.FgRed, color.Bold),
		changed: color.New(color.FgYellow),
		ok:      color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.failed, p.changed, p.ok} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}
