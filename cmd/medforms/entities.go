package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-medforms/pkg/catalog"
)

func newEntitiesCmd() *cobra.Command {
	var configDir string
	cmd := &cobra.Command{
		Use:   "entities",
		Short: "List the entities the catalog can render",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := catalog.Default()
			if configDir != "" {
				loaded, err := catalog.Load(os.DirFS(configDir))
				if err != nil {
					return err
				}
				registry = loaded
			}
			for _, entity := range registry.Entities() {
				def, err := registry.Definition(entity)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %d fields\n", entity, len(def.Fields))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configDir, "config-dir", "", "catalog config directory (embedded catalog if empty)")
	return cmd
}
