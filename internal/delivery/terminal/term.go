package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

const defaultWidth = 80

// ANSI styles.
const (
	styleDim          = "2"
	styleRed          = "31"
	styleGreen        = "32"
	stylePurple       = "35"
	styleCyan         = "36"
	styleBrightYellow = "93"
	styleBrightCyan   = "96"
	styleBrightRed    = "91"
)

// Screen writes to the terminal, colouring output only when it is a TTY.
type Screen struct {
	out   io.Writer
	color bool
	width func() int
}

// NewScreen creates a Screen on f. Colours are disabled when f is not a
// terminal or NO_COLOR is set.
func NewScreen(f *os.File) *Screen {
	fd := f.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	return &Screen{
		out:   f,
		color: tty && os.Getenv("NO_COLOR") == "",
		width: func() int {
			w, _, err := term.GetSize(int(fd))
			if err != nil || w <= 0 {
				return defaultWidth
			}
			return w
		},
	}
}

// NewPlainScreen creates an uncoloured Screen of fixed width.
func NewPlainScreen(out io.Writer, width int) *Screen {
	return &Screen{
		out:   out,
		width: func() int { return width },
	}
}

// Width returns the current terminal width in columns.
func (s *Screen) Width() int {
	return s.width()
}

func (s *Screen) paint(style, text string) string {
	if !s.color || text == "" {
		return text
	}
	return "\x1b[" + style + "m" + text + "\x1b[0m"
}

// Clear wipes the screen and moves the cursor home.
func (s *Screen) Clear() {
	if s.color {
		fmt.Fprint(s.out, "\x1b[2J\x1b[1;1H")
	}
}

func (s *Screen) Print(a ...any) {
	fmt.Fprint(s.out, a...)
}

func (s *Screen) Println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Screen) Printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}
