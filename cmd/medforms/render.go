package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-medforms"
	"github.com/goliatone/go-medforms/pkg/catalog"
	"github.com/goliatone/go-medforms/pkg/engine"
)

func newRenderCmd() *cobra.Command {
	var (
		rendererName string
		output       string
		valuesFile   string
		editing      bool
		configDir    string
	)
	cmd := &cobra.Command{
		Use:   "render <entity>",
		Short: "Render the form for an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngineFromDir(configDir)
			if err != nil {
				return err
			}

			var values map[string]any
			if valuesFile != "" {
				data, err := os.ReadFile(valuesFile)
				if err != nil {
					return err
				}
				if err := json.Unmarshal(data, &values); err != nil {
					return fmt.Errorf("parse %s: %w", valuesFile, err)
				}
			}

			result, err := eng.Generate(context.Background(), medforms.Request{
				Entity:   args[0],
				Renderer: rendererName,
				Values:   values,
				Editing:  editing,
			})
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, result.Body, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "form written to %s\n", output)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(result.Body))
			return nil
		},
	}
	cmd.Flags().StringVar(&rendererName, "renderer", "vanilla", "renderer to use (vanilla|tui)")
	cmd.Flags().StringVar(&output, "output", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&valuesFile, "values", "", "JSON file with prefill values")
	cmd.Flags().BoolVar(&editing, "editing", false, "render in edit mode")
	cmd.Flags().StringVar(&configDir, "config-dir", "", "catalog config directory (embedded catalog if empty)")
	return cmd
}

func newEngineFromDir(configDir string) (*engine.Engine, error) {
	if configDir == "" {
		return medforms.NewEngine()
	}
	registry, err := catalog.Load(os.DirFS(configDir))
	if err != nil {
		return nil, err
	}
	return medforms.NewEngine(medforms.WithCatalog(registry))
}
