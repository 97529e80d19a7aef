package main

import (
	"os"

	"github.com/spf13/cobra"

	"coursekit/internal/interfaces/cli/migrate"
	"coursekit/internal/interfaces/cli/server"
	"coursekit/internal/interfaces/cli/user"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "coursekit",
		Short: "CourseKit - course platform server",
		Long:  `CourseKit serves the course catalog, student learning area, and back-office, with built-in migration tooling.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		user.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
