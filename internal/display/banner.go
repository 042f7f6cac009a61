package display

import (
	"fmt"
	"os"

	"github.com/dailysky/apodrelay/internal/logging"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if logging.Magenta != "" {
		fmt.Fprint(os.Stdout, "\033[1;95m")
	}
	fmt.Fprint(os.Stdout, `    _                _ ____      _
   / \   _ __   ___ | |  _ \ ___| | __ _ _   _
  / _ \ | '_ \ / _ \| | |_) / _ \ |/ _`+"`"+` | | | |
 / ___ \| |_) | (_) | |  _ <  __/ | (_| | |_| |
/_/   \_\ .__/ \___/|_|_| \_\___|_|\__,_|\__, |
        |_|                              |___/
`)
	if logging.Magenta != "" {
		fmt.Fprintln(os.Stdout, logging.NC)
	}
}
