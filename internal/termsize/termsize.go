// Package termsize reads and sets terminal window sizes.
package termsize

import (
	"fmt"
	"os"

	"github.com/creack/pty"

	"framed/internal/geom"
)

// Fallback is the size assumed when the terminal cannot be queried.
var Fallback = geom.Pt(24, 80)

// Get returns the window size of the terminal f refers to.
func Get(f *os.File) (geom.Point, error) {
	rows, cols, err := pty.Getsize(f)
	if err != nil {
		return geom.Point{}, fmt.Errorf("get terminal size: %w", err)
	}
	return geom.Pt(rows, cols), nil
}

// Set changes the window size of the terminal f refers to.
func Set(f *os.File, size geom.Point) error {
	if size.Y < 0 || size.X < 0 || size.Y > 0xffff || size.X > 0xffff {
		return fmt.Errorf("set terminal size: %s out of range", size)
	}
	ws := &pty.Winsize{Rows: uint16(size.Y), Cols: uint16(size.X)}
	if err := pty.Setsize(f, ws); err != nil {
		return fmt.Errorf("set terminal size: %w", err)
	}
	return nil
}

// Stdout returns the size of the terminal on stdout, or Fallback.
func Stdout() geom.Point {
	size, err := Get(os.Stdout)
	if err != nil || size.Y == 0 || size.X == 0 {
		return Fallback
	}
	return size
}
