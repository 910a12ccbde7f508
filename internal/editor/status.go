package editor

import (
	"fmt"

	"github.com/JackWReid/veer/internal/document"
)

// StatusLine formats "name [+] line-col" for the status bar. The line
// number is counted from the head and the column is 1-based visual.
func StatusLine(b *document.Buffer) string {
	state := "   "
	if b.Modified {
		state = "[+]"
	}
	return fmt.Sprintf(" %s %s %d-%d", b.Name(), state, b.LineNumber(b.Active), b.VisualX+1)
}
