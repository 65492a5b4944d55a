// Package voice implements the voice command: a console front end for the
// voice command interpreter. Each input line is treated as a final speech
// transcript.
package voice

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"fjacquet/finsight/cmd/root"
	"fjacquet/finsight/internal/container"
	"fjacquet/finsight/internal/voice"

	"github.com/spf13/cobra"
)

var (
	say         []string
	autoConfirm bool
	speak       bool
)

// Cmd represents the voice command
var Cmd = &cobra.Command{
	Use:   "voice",
	Short: "Interpret voice command transcripts",
	Long: `Interpret voice command transcripts typed on stdin, one per line, or
passed with --say. Destructive commands ask for confirmation first.
Type "quit" to leave.`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringArrayVarP(&say, "say", "s", nil, "Transcript to process (repeatable); skips interactive input")
	Cmd.Flags().BoolVarP(&autoConfirm, "yes", "y", false, "Confirm destructive commands without asking")
	Cmd.Flags().BoolVar(&speak, "speak", false, "Print spoken responses")
}

func run(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	managerOpts := []voice.ManagerOption{}
	if speak {
		managerOpts = append(managerOpts, voice.WithSpeaker(ConsoleSpeaker{W: cmd.ErrOrStderr()}))
	}
	c, err := root.NewContainer(
		container.WithUI(ConsoleUI{W: out}),
		container.WithManagerOptions(managerOpts...),
	)
	if err != nil {
		return err
	}
	defer c.Close()

	session := c.GetVoiceManager().Session(root.SharedFlags.UserID)

	var in io.Reader = cmd.InOrStdin()
	interactive := len(say) == 0
	if !interactive {
		in = strings.NewReader(strings.Join(say, "\n") + "\n")
	}
	return Run(cmd.Context(), in, out, session, Options{AutoConfirm: autoConfirm, Prompt: interactive})
}

// Options tunes Run.
type Options struct {
	// AutoConfirm answers every confirmation with yes.
	AutoConfirm bool
	// Prompt prints an input prompt before each line.
	Prompt bool
}

// Run reads transcripts from in until EOF or "quit" and prints the events
// they produce. A confirmation request consumes the next line as the answer.
func Run(ctx context.Context, in io.Reader, out io.Writer, session *voice.Session, opts Options) error {
	scanner := bufio.NewScanner(in)
	prompt := func(p string) {
		if opts.Prompt {
			fmt.Fprint(out, p)
		}
	}

	prompt("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			prompt("> ")
			continue
		case "quit", "exit":
			return nil
		}

		events, err := session.HandleFinal(ctx, line)
		printEvents(out, events)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}

		if session.Pending() != nil {
			confirm := opts.AutoConfirm
			if !confirm {
				prompt("Confirm? [y/N] ")
				if !scanner.Scan() {
					break
				}
				answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
				confirm = answer == "y" || answer == "yes"
			}
			_, events, err := session.Confirm(ctx, confirm)
			printEvents(out, events)
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
			}
		}
		prompt("> ")
	}
	return scanner.Err()
}

func printEvents(w io.Writer, events []voice.Event) {
	for _, ev := range events {
		switch ev.Type {
		case voice.EventTranscript:
			continue
		case voice.EventCommand:
			fmt.Fprintln(w, ev.Message)
			if ev.Result != nil && ev.Result.Message != "" {
				fmt.Fprintf(w, "  %s\n", ev.Result.Message)
			}
		default:
			fmt.Fprintln(w, ev.Message)
		}
	}
}

// ConsoleUI prints the presentation side effects of executed commands.
type ConsoleUI struct {
	W io.Writer
}

func (u ConsoleUI) Navigate(route string)   { fmt.Fprintf(u.W, "  [navigate %s]\n", route) }
func (u ConsoleUI) ScrollTo(element string) { fmt.Fprintf(u.W, "  [scroll to %s]\n", element) }
func (u ConsoleUI) Filter(category string)  { fmt.Fprintf(u.W, "  [filter category %s]\n", category) }
func (u ConsoleUI) FilterDate(date string)  { fmt.Fprintf(u.W, "  [filter date %s]\n", date) }
func (u ConsoleUI) ShowHelp(groups []voice.HelpGroup) {
	for _, g := range groups {
		fmt.Fprintf(u.W, "  %s:\n", g.Intent)
		for _, ex := range g.Examples {
			fmt.Fprintf(u.W, "    \"%s\"\n", ex)
		}
	}
}

// ConsoleSpeaker writes spoken text instead of synthesizing it.
type ConsoleSpeaker struct {
	W io.Writer
}

// Speak implements voice.Speaker.
func (s ConsoleSpeaker) Speak(text string) {
	fmt.Fprintf(s.W, "(speaking) %s\n", text)
}
