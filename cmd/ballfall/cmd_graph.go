package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nvandessel/ballfall/internal/graph"
	"github.com/nvandessel/ballfall/internal/visualization"
	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [connections]",
		Short: "Render the contact graph",
		Long: `Load an adjacency file (default: connections.txt in the output directory)
and render it in DOT (Graphviz), JSON, or SVG format. Node positions come from
multidimensional scaling of hop distances.

Examples:
  ballfall graph                                # DOT to stdout
  ballfall graph --format json
  ballfall graph runs/connections.txt --format svg -o graph.svg --open`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			outPath, _ := cmd.Flags().GetString("output")
			open, _ := cmd.Flags().GetBool("open")
			size, _ := cmd.Flags().GetFloat64("size")

			f, ok := visualization.ParseFormat(format)
			if !ok {
				return fmt.Errorf("unsupported format %q (use 'dot', 'json', or 'svg')", format)
			}

			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				path = filepath.Join(cfg.Output.Dir, cfg.Output.AdjacencyFile)
			}

			g, err := graph.LoadFile(path)
			if err != nil {
				return fmt.Errorf("load graph: %w", err)
			}
			view := visualization.BuildView(g)

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				file, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer file.Close()
				w = file
			}

			switch f {
			case visualization.FormatDOT:
				fmt.Fprint(w, visualization.RenderDOT(view))
			case visualization.FormatJSON:
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(visualization.RenderJSON(view)); err != nil {
					return fmt.Errorf("encode JSON: %w", err)
				}
			case visualization.FormatSVG:
				fmt.Fprint(w, visualization.RenderSVG(view, size))
			}

			if open {
				if outPath == "" {
					return fmt.Errorf("--open requires --output")
				}
				if err := visualization.Open(outPath); err != nil {
					return fmt.Errorf("open viewer: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().String("format", "dot", "Output format: dot, json, or svg")
	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().Bool("open", false, "Open the written file in the default viewer")
	cmd.Flags().Float64("size", 600, "SVG canvas size in pixels")

	return cmd
}
