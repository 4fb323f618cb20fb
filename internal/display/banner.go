package display

import (
	"fmt"
	"io"

	"github.com/backmassage/h264ify/internal/term"
)

// PrintBanner prints the ASCII art banner in magenta when colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Magenta.Sprint(` _     ____   __   _  _   _  __
| |__ |___ \ / /_ | || | (_)/ _|_   _
| '_ \  __) | '_ \| || |_| | |_| | | |
| | | |/ __/| (_) |__   _| |  _| |_| |
|_| |_|_____|\___/   |_| |_|_|  \__, |
                                |___/`))
	fmt.Fprintln(w)
}
