// Command store runs the jewellery store API and its maintenance tasks.
package main

import (
	"os"

	"github.com/spf13/cobra"

	_ "github.com/shashiranjanraj/kashvi-store/database/migrations" // registry side effects
)

var rootCmd = &cobra.Command{
	Use:   "store",
	Short: "Kashvi jewellery store API server and tooling",
}

func main() {
	rootCmd.AddCommand(
		serveCmd,
		routeListCmd,
		migrateCmd,
		migrateRollbackCmd,
		migrateStatusCmd,
		seedCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
