//go:build darwin || freebsd || linux || netbsd || openbsd || zos

package termsize

import (
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"git.sr.ht/~rockorager/octquant/log"
)

// Get returns the size of the terminal f refers to.
func Get(f *os.File) (Winsize, error) {
	log.Trace("requesting screen size from ioctl")
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		cols, rows, err := term.GetSize(int(f.Fd()))
		if err != nil {
			return Winsize{}, err
		}
		return Winsize{
			Cols: cols,
			Rows: rows,
		}, nil
	}
	return Winsize{
		Cols:   int(ws.Col),
		Rows:   int(ws.Row),
		XPixel: int(ws.Xpixel),
		YPixel: int(ws.Ypixel),
	}, nil
}
