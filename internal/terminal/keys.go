package terminal

// EventType classifies a decoded input event.
type EventType int

const (
	EventUnknown   EventType = iota // Unrecognised sequence
	EventPrintable                  // Byte to insert
	EventCommand                    // Named command
	EventNav                        // Navigation or editing key
	EventRedraw                     // Screen must be redrawn (resize)
)

// Command is a named editor command.
type Command int

const (
	CmdNone Command = iota
	CmdSave
	CmdExit
	CmdOpen
	CmdPrevBuffer
	CmdNextBuffer
	CmdSwitchBuffer
)

// Nav is a navigation or editing key.
type Nav int

const (
	NavNone Nav = iota
	NavUp
	NavDown
	NavLeft
	NavRight
	NavHome
	NavEnd
	NavEnter
	NavBackspace
	NavEscape
)

// Event is one decoded input event.
type Event struct {
	Type    EventType
	Byte    byte
	Command Command
	Nav     Nav
}

// Printable returns an insert event for b.
func Printable(b byte) Event { return Event{Type: EventPrintable, Byte: b} }

// Key returns a navigation event.
func Key(n Nav) Event { return Event{Type: EventNav, Nav: n} }

// Cmd returns a command event.
func Cmd(c Command) Event { return Event{Type: EventCommand, Command: c} }

func ctrl(c byte) byte { return c - 64 }

// Parse decodes one read from the terminal.
func Parse(buf []byte) Event {
	if len(buf) == 0 {
		return Event{}
	}

	// Single byte.
	if len(buf) == 1 {
		b := buf[0]
		switch {
		case b == 27:
			return Key(NavEscape)
		case b == 13 || b == 10:
			return Key(NavEnter)
		case b == 127 || b == 8:
			return Key(NavBackspace)
		case b == '\t' || (b >= 32 && b < 127):
			return Printable(b)
		case b == ctrl('S'):
			return Cmd(CmdSave)
		case b == ctrl('X'):
			return Cmd(CmdExit)
		case b == ctrl('O'):
			return Cmd(CmdOpen)
		case b == ctrl('P'):
			return Cmd(CmdPrevBuffer)
		case b == ctrl('N'):
			return Cmd(CmdNextBuffer)
		case b == ctrl('B'):
			return Cmd(CmdSwitchBuffer)
		default:
			return Event{}
		}
	}

	if buf[0] != 27 || len(buf) < 3 || (buf[1] != '[' && buf[1] != 'O') {
		return Event{}
	}

	// CSI 3-byte sequences, and SS3 variants some terminals send.
	if len(buf) == 3 {
		switch buf[2] {
		case 'A':
			return Key(NavUp)
		case 'B':
			return Key(NavDown)
		case 'C':
			return Key(NavRight)
		case 'D':
			return Key(NavLeft)
		case 'H':
			return Key(NavHome)
		case 'F':
			return Key(NavEnd)
		}
		return Event{}
	}

	// CSI 4-byte sequences: ESC [ <n> ~
	if len(buf) == 4 && buf[3] == '~' {
		switch buf[2] {
		case '1', '7':
			return Key(NavHome)
		case '4', '8':
			return Key(NavEnd)
		}
		return Event{}
	}

	// Ctrl+Left / Ctrl+Right: ESC [ 1 ; 5 D|C
	if len(buf) == 6 && buf[2] == '1' && buf[3] == ';' && buf[4] == '5' {
		switch buf[5] {
		case 'D':
			return Cmd(CmdPrevBuffer)
		case 'C':
			return Cmd(CmdNextBuffer)
		}
	}

	return Event{}
}
