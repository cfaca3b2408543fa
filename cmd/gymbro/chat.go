package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/gymbro-ai/gymbro/internal/agent"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	coachStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	thinkingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// exitSentinels end the session when typed on their own.
var exitSentinels = map[string]bool{
	"exit": true,
	"quit": true,
	"bye":  true,
}

// pinger is the connectivity probe for the model server. Implemented by
// [llm.Client].
type pinger interface {
	Ping(ctx context.Context) error
}

// runChat drives the interactive read loop: one user line in, one coach
// reply out, until an exit sentinel, EOF, or signal. Turn failures never
// end the loop — the session surfaces them as replies.
func runChat(ctx context.Context, stdin io.Reader, stdout io.Writer, session *agent.Session, probe pinger) error {
	printBanner(stdout)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err := probe.Ping(pingCtx)
	cancel()
	if err != nil {
		fmt.Fprintln(stdout, warnStyle.Render("Could not reach Ollama. Make sure it is running (check with: ollama list)"))
		fmt.Fprintln(stdout, warnStyle.Render("and that a tool-capable model is installed, e.g.: ollama pull llama3.2"))
		fmt.Fprintln(stdout)
	}

	scanner := bufio.NewScanner(stdin)
	for {
		if ctx.Err() != nil {
			printFarewell(stdout)
			return nil
		}

		fmt.Fprint(stdout, "You: ")
		if !scanner.Scan() {
			// EOF or closed input stream.
			fmt.Fprintln(stdout)
			printFarewell(stdout)
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if exitSentinels[strings.ToLower(input)] {
			printFarewell(stdout)
			return nil
		}

		fmt.Fprintln(stdout, thinkingStyle.Render("Gymbro is thinking..."))

		reply, err := session.Turn(ctx, input)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				printFarewell(stdout)
				return nil
			}
			return err
		}

		fmt.Fprintf(stdout, "\n%s %s\n\n", coachStyle.Render("Gymbro:"), reply)
	}
}

func printBanner(w io.Writer) {
	line := strings.Repeat("=", 60)
	fmt.Fprintln(w, bannerStyle.Render(line))
	fmt.Fprintln(w, bannerStyle.Render("Welcome to Gymbro - Your AI Fitness Coach!"))
	fmt.Fprintln(w, bannerStyle.Render(line))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "I'm here to help you achieve your fitness goals.")
	fmt.Fprintln(w, "You can ask me about workouts, nutrition, or request a workout plan.")
	fmt.Fprintln(w, "Type 'exit' to quit.")
	fmt.Fprintln(w)
}

func printFarewell(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, coachStyle.Render("Thanks for using Gymbro! Stay fit and healthy!"))
}
