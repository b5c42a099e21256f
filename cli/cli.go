// Package cli provides plain terminal I/O for Storycore games. It is
// the no-frills front-end; the tui package is the styled one.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/storycore/engine"
	"github.com/nathoo/storycore/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run starts the game loop. It shows the intro, describes the starting
// room, then loops: prompt, input, process, output.
func (c *CLI) Run() {
	if intro := c.Engine.Intro(); intro != "" {
		c.printLine(intro)
		c.printLine("")
	}

	if msg, err := c.Engine.FirstRoomText(); err == nil {
		c.printLine(msg.Message)
	}

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// "again" / "g" repeats the last command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result, err := c.Engine.Process(input)
		if err != nil {
			// Dispatch errors carry in-fiction text.
			c.printLine(err.Error())
			continue
		}

		c.printResult(result)
		if result.Kind == types.ResultQuit {
			return
		}
	}
}

func (c *CLI) printResult(result types.Result) {
	if result.Message != nil {
		c.printLine(result.Message.Message)
		return
	}
	if result.Text != "" {
		c.printLine(result.Text)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}
