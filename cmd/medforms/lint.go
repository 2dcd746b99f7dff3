package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-medforms/pkg/catalog"
	"github.com/goliatone/go-medforms/pkg/openapi"
)

// newLintCmd validates form sources before deployment: catalog config
// directories and OpenAPI documents carrying x-medforms extensions.
func newLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Validate catalog config directories and OpenAPI documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failures int
			for _, path := range args {
				if err := lintPath(path); err != nil {
					failures++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}
			if failures > 0 {
				return fmt.Errorf("%d of %d paths failed", failures, len(args))
			}
			return nil
		},
	}
	return cmd
}

func lintPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		registry, err := catalog.Load(os.DirFS(path))
		if err != nil {
			return err
		}
		if len(registry.Entities()) == 0 {
			return fmt.Errorf("no entity definitions found")
		}
		return nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		doc, err := openapi.New().LoadFile(context.Background(), path)
		if err != nil {
			return err
		}
		for _, schema := range doc.Schemas() {
			if _, err := doc.Fields(schema); err != nil {
				return fmt.Errorf("schema %s: %w", schema, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported file type")
	}
}
