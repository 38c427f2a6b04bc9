package display

import (
	"fmt"
	"os"

	"github.com/backmassage/heic2jpg/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Magenta != "" {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, ` _          _      ____  _
| |__   ___(_) ___|___ \(_)_ __   __ _
| '_ \ / _ \ |/ __| __) | | '_ \ / _`+"`"+` |
| | | |  __/ | (__ / __/| | |_) | (_| |
|_| |_|\___|_|\___|_____|/ | .__/ \__, |
                        |__/|_|    |___/
`)
	if term.Magenta != "" {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
