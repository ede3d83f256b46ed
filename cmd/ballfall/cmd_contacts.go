package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nvandessel/ballfall/internal/contact"
	"github.com/nvandessel/ballfall/internal/logging"
	"github.com/nvandessel/ballfall/internal/output"
	"github.com/spf13/cobra"
)

func newContactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts <positions>",
		Short: "Extract contacts from a list of positions",
		Long: `Read body centers ("x;y" per line, or a whole report) and rewrite
connections.txt with the touching pairs. Identifiers follow line order.
A report holding several appended runs is read from its last run.

Examples:
  ballfall contacts 20240131-235959.txt
  ballfall contacts centers.txt --radius 15 --ratio 1.05 --out graphs/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("radius") {
				cfg.Body.Radius, _ = flags.GetFloat64("radius")
			}
			if flags.Changed("ratio") {
				cfg.Contact.ThresholdRatio, _ = flags.GetFloat64("ratio")
			}
			if flags.Changed("out") {
				cfg.Output.Dir, _ = flags.GetString("out")
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening positions: %w", err)
			}
			positions, err := output.ReadPositions(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
			bodies := contact.FromPositions(positions, cfg.Body.Radius)
			pairs := contact.Extract(bodies, cfg.Body.Radius, cfg.Contact.ThresholdRatio)

			w := output.NewWriter(cfg.Output.Dir, logger)
			w.AdjacencyName = cfg.Output.AdjacencyFile
			path, err := w.WriteAdjacency(pairs)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"bodies":    len(bodies),
					"pairs":     contact.PairCount(len(bodies)),
					"contacts":  pairs,
					"adjacency": path,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d bodies, %d contacts of %d pairs -> %s\n",
				len(bodies), len(pairs), contact.PairCount(len(bodies)), path)
			return nil
		},
	}

	cmd.Flags().Float64("radius", 0, "Body radius (default from config)")
	cmd.Flags().Float64("ratio", 0, "Contact threshold ratio (default from config)")
	cmd.Flags().String("out", "", "Output directory (default from config)")

	return cmd
}
