package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/carfinder/internal/api/client"
	domain "github.com/donaldgifford/carfinder/pkg/types"
)

const chatPrompt = "you> "

func chatCmd() *cobra.Command {
	var live bool

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to the car shopping assistant",
		Long: "Sends a message to the assistant and prints its reply and matches.\n" +
			"Without a message, starts an interactive session that carries your\n" +
			"preferences from one turn to the next. Type \"exit\" or press Ctrl-D to leave.",
		Example: `  cf chat "I need a reliable SUV under 35k"
  cf chat --live`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &chatSession{client: newClient(), out: cmd.OutOrStdout()}
			if cmd.Flags().Changed("live") {
				s.live = &live
			}

			if len(args) == 1 {
				return s.turn(cmd.Context(), args[0])
			}
			return s.loop(cmd.Context(), cmd.InOrStdin())
		},
	}
	cmd.Flags().BoolVar(&live, "live", false, "query live providers instead of the cache")

	return cmd
}

// chatSession keeps the preferences the server returned so later turns
// build on earlier ones.
type chatSession struct {
	client *apiclient.Client
	out    io.Writer
	live   *bool
	prefs  *domain.PreferenceSet
}

func (s *chatSession) loop(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, chatPrompt)
		if !sc.Scan() {
			fmt.Fprintln(s.out)
			return sc.Err()
		}

		msg := strings.TrimSpace(sc.Text())
		switch strings.ToLower(msg) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		if err := s.turn(ctx, msg); err != nil {
			return err
		}
	}
}

func (s *chatSession) turn(ctx context.Context, msg string) error {
	resp, err := s.client.Chat(ctx, &apiclient.ChatRequest{
		Message:     msg,
		Preferences: s.prefs,
		UseLiveData: s.live,
	})
	if err != nil {
		return err
	}
	s.prefs = &resp.Preferences

	if jsonOutput() {
		return outputJSON(s.out, resp)
	}

	fmt.Fprintf(s.out, "\n%s\n\n", resp.Reply)
	if len(resp.Results) > 0 {
		if err := printScoredTable(s.out, resp.Results); err != nil {
			return err
		}
		fmt.Fprintln(s.out)
	}
	return nil
}
