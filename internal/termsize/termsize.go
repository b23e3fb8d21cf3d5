// Package termsize reports the size of the terminal attached to a file.
package termsize

// Winsize is a terminal size in cells and, when the terminal reports it, in
// pixels.
type Winsize struct {
	Cols   int
	Rows   int
	XPixel int
	YPixel int
}

// CellSize returns the size of one cell in pixels, or zeros when the pixel
// size is unknown.
func (ws Winsize) CellSize() (w int, h int) {
	if ws.Cols == 0 || ws.Rows == 0 {
		return 0, 0
	}
	return ws.XPixel / ws.Cols, ws.YPixel / ws.Rows
}
