package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/fathom-mcp/internal/fathom"
	"github.com/teemow/fathom-mcp/internal/output"
	"github.com/teemow/fathom-mcp/internal/search"
)

func newSearchCmd() *cobra.Command {
	var (
		apiKey            string
		includeTranscript bool
		outputFormat      string
		perPage           int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search Fathom meetings from the command line",
		Long: `Run a one-off search over your Fathom meetings without starting a server.

The query is matched case-insensitively against meeting titles, attendee
names and emails, team names, topics, and summaries. With
--include-transcript the search also covers transcript text.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			if apiKey == "" {
				apiKey = os.Getenv("FATHOM_API_KEY")
			}
			if !cmd.Flags().Changed("output-format") {
				if env := os.Getenv("OUTPUT_FORMAT"); env != "" {
					outputFormat = env
				}
			}

			client, err := fathom.NewClient(apiKey)
			if err != nil {
				return fmt.Errorf("failed to create Fathom client: %w", err)
			}

			svc := search.NewService(client, search.Config{PerPage: perPage})
			resp, err := svc.Search(context.Background(), query, includeTranscript)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			encoded, err := output.NewEncoder(output.ParseFormat(outputFormat)).Encode(resp)
			if err != nil {
				return fmt.Errorf("failed to encode results: %w", err)
			}

			fmt.Println(encoded)
			return nil
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "Fathom API key. Can also use FATHOM_API_KEY env var.")
	cmd.Flags().BoolVar(&includeTranscript, "include-transcript", false, "Also search transcript text (slower)")
	cmd.Flags().StringVar(&outputFormat, "output-format", string(output.FormatJSON), "Result format: json or yaml. Can also use OUTPUT_FORMAT env var.")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "Page size for pagination (0 lets the API decide)")

	return cmd
}
