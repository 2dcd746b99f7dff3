package main

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "medforms",
	Short: "Generate and serve medical record entry forms",
}

func init() {
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newEntitiesCmd())
	rootCmd.AddCommand(newLintCmd())
	rootCmd.AddCommand(newServeCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
