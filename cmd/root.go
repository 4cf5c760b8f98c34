package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "staybook",
		Short: "Reservation engine and unit ranker for short-term rentals",
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newUnitCmd())
	root.AddCommand(newBookCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newRankCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
