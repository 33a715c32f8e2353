// Package interactive holds the console open so a user who double-clicked
// the updater can read why it failed.
package interactive

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// PauseMessage is printed before waiting for ENTER.
const PauseMessage = "Press ENTER to exit ..."

// Prompter waits for user acknowledgement.
type Prompter struct {
	in          io.Reader
	out         io.Writer
	interactive bool
	goos        string
}

// NewPrompterWithIO creates a prompter reading from in and writing to out.
// goos selects the platform whose console needs holding open.
func NewPrompterWithIO(in io.Reader, out io.Writer, interactive bool, goos string) *Prompter {
	return &Prompter{
		in:          in,
		out:         out,
		interactive: interactive,
		goos:        goos,
	}
}

// IsTerminal checks if stdin is a terminal (TTY).
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// PauseOnFailure blocks until ENTER is pressed when the run failed on a
// Windows console, whose window would otherwise close immediately. It
// reports whether it paused.
func (p *Prompter) PauseOnFailure(exitCode int) bool {
	if exitCode == 0 || p.goos != "windows" || !p.interactive {
		return false
	}

	_, _ = fmt.Fprintf(p.out, "\n%s\n", PauseMessage)
	_, _ = bufio.NewReader(p.in).ReadString('\n')
	return true
}
