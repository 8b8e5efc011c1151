package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/kashvi-store/config"
	"github.com/shashiranjanraj/kashvi-store/internal/server"
	"github.com/shashiranjanraj/kashvi-store/pkg/database"
	"github.com/shashiranjanraj/kashvi-store/pkg/storage"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run"},
	Short:   "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := server.New()
		if err != nil {
			return err
		}
		return srv.Run()
	},
}

var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "Print the registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		if err := database.Connect(); err != nil {
			return err
		}
		storage.Connect()

		fmt.Printf("%-8s %-32s %s\n", "Method", "Path", "Name")
		for _, route := range server.NewRouter().Routes() {
			fmt.Printf("%-8s %-32s %s\n", route.Method, route.Path, route.Name)
		}
		return nil
	},
}
