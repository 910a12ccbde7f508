package text

// TabStop is the tab width in display cells.
const TabStop = 8

func advance(col int, b byte) int {
	if b == '\t' {
		return col + TabStop - col%TabStop
	}
	return col + 1
}

// RealToVisual returns the display column of byte index realX. The walk stops
// early at the terminator or the end of the line.
func RealToVisual(l *Line, realX int) int {
	b := l.Bytes()
	col := 0
	for i := 0; i < realX && i < len(b) && b[i] != Terminator; i++ {
		col = advance(col, b[i])
	}
	return col
}

// VisualToReal returns the byte index whose cell starts at or before
// visualX. A byte whose cell would end past visualX is not stepped over, so a
// column inside a tab maps to the tab itself. Columns past the end of the
// content map to ContentLen.
func VisualToReal(l *Line, visualX int) int {
	b := l.Bytes()
	col, i := 0, 0
	for i < len(b) && b[i] != Terminator {
		next := advance(col, b[i])
		if next > visualX {
			break
		}
		col = next
		i++
	}
	return i
}
