//go:build !(darwin || freebsd || linux || netbsd || openbsd || zos)

package termsize

import (
	"os"

	"golang.org/x/term"

	"git.sr.ht/~rockorager/octquant/log"
)

// Get returns the size of the terminal f refers to. Pixel sizes are not
// available on this platform.
func Get(f *os.File) (Winsize, error) {
	log.Trace("requesting screen size from console")
	cols, rows, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return Winsize{}, err
	}
	return Winsize{
		Cols: cols,
		Rows: rows,
	}, nil
}
