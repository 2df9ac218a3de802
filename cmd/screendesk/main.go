package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/warrick/screendesk/internal/monday"
	"github.com/warrick/screendesk/internal/tui"
)

var (
	// CLI flags
	apiFlag      string
	tokenFlag    string
	boardFlag    string
	clientFlag   string
	boardURLFlag string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "screendesk",
		Short: "Terminal client for retail display support tickets",
		Long: `screendesk is a terminal client for reporting malfunctioning retail
displays. It collects a ticket (store, contact, one or more screens with
optional photos) and files it on the support board: one item per ticket,
one subitem per screen, one file upload per photo.

Board access:
  1. On-site relay: pass --api (or set SCREENDESK_API)
  2. Direct monday.com API: pass --token (or set MONDAY_TOKEN)`,
		RunE: run,
	}

	// Define CLI flags
	rootCmd.Flags().StringVar(&apiFlag, "api", "", "Base URL of the board relay. Falls back to SCREENDESK_API.")
	rootCmd.Flags().StringVar(&tokenFlag, "token", "", "monday.com API token for direct access. Falls back to MONDAY_TOKEN.")
	rootCmd.Flags().StringVar(&boardFlag, "board", monday.DefaultBoardID, "Ticket board ID.")
	rootCmd.Flags().StringVar(&clientFlag, "client", "", "Client name. Pre-fills the store name.")
	rootCmd.Flags().StringVar(&boardURLFlag, "board-url", "", "Browser URL of the board, used to open created tickets.")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	ctx := context.Background()

	app := tui.NewAppModel(svc, ctx, clientFlag, boardURLFlag)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}

	return nil
}

// newService resolves the board service from flags and environment:
// the relay when an API URL is given, the direct monday.com client when
// a token is given. Exactly one must be configured.
func newService() (monday.Service, error) {
	api := apiFlag
	if api == "" {
		api = os.Getenv("SCREENDESK_API")
	}
	token := tokenFlag
	if token == "" {
		token = os.Getenv("MONDAY_TOKEN")
	}

	switch {
	case api != "" && token != "":
		return nil, fmt.Errorf("--api and --token are mutually exclusive")
	case api != "":
		return monday.NewRelayClient(api, boardFlag), nil
	case token != "":
		return monday.NewDirectClient(token, boardFlag), nil
	default:
		return nil, fmt.Errorf("no board access configured.\n\nPlease either:\n" +
			"  1. Pass --api or set SCREENDESK_API to the relay URL, or\n" +
			"  2. Pass --token or set MONDAY_TOKEN for direct API access")
	}
}
