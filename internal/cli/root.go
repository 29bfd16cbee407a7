package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
	seats  *SeatStore
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "othello",
		Short: "CLI tool for the Othello game server",
		Long: `othello is a CLI tool for playing on an Othello game server.

It creates games against bots or other people, plays moves, and streams
live game events. Seat tokens for the games you create are remembered in
a local state file so later commands can act for you.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if seats, err = LoadSeatStore(cfg.StateFile); err != nil {
				return err
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL)
			if cfg.Verbose {
				client.SetTrace(cmd.ErrOrStderr())
				fmt.Fprintf(cmd.ErrOrStderr(), "seat tokens: %s\n", seats.Path())
			}
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: OTHELLO_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.StateFile, "state-file", cfg.StateFile, "Seat token file (env: OTHELLO_STATE_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newNewCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newMovesCmd())
	rootCmd.AddCommand(newMoveCmd())
	rootCmd.AddCommand(newRestartCmd())
	rootCmd.AddCommand(newAbandonCmd())
	rootCmd.AddCommand(newSummariesCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
