package display

// CenterX returns the left cursor that horizontally centers an n-glyph string
// on a panel of the given width, assuming a fixed glyph advance.
func CenterX(width int16, n int, glyph int16) int16 {
	return width/2 - int16(n)*glyph/2
}

// rowY places a text row: row index times the row pixel height, plus a small
// hand-tuned offset. The offsets match the panel's yellow/blue band layout.
func rowY(rowPx, row, off int16) int16 {
	return rowPx*row + off
}
