package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/nvandessel/ballfall/internal/constants"
	"github.com/nvandessel/ballfall/internal/output"
	"github.com/spf13/cobra"
)

func newReportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Manage timestamped run reports",
		Long: `Every run appends to a report named after the time it finished. These
accumulate; list them or prune the old ones.

Examples:
  ballfall reports list
  ballfall reports prune --keep 5
  ballfall reports prune --max-age 30d --dry-run`,
	}

	cmd.AddCommand(
		newReportsListCmd(),
		newReportsPruneCmd(),
	)

	return cmd
}

func newReportsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reports, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			reports, err := output.ListReports(cfg.Output.Dir, cfg.Output.ReportLayout)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				list := make([]map[string]interface{}, 0, len(reports))
				for _, r := range reports {
					list = append(list, map[string]interface{}{
						"path":       r.Path,
						"size":       r.Size,
						"created_at": r.CreatedAt,
					})
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"reports": list,
					"count":   len(list),
				})
			}

			if len(reports) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No reports found.")
				return nil
			}
			for _, r := range reports {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %8d bytes  %s\n",
					filepath.Base(r.Path), r.Size, r.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

func newReportsPruneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete reports outside the retention policy",
		Long: `Delete old reports. With both --keep and --max-age, a report survives if
either rule keeps it. With neither, the config retention applies, falling
back to keeping the 10 newest.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			keep, _ := cmd.Flags().GetInt("keep")
			maxAge, _ := cmd.Flags().GetString("max-age")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			if !cmd.Flags().Changed("keep") && maxAge == "" {
				keep = cfg.Output.Retention.MaxCount
				maxAge = cfg.Output.Retention.MaxAge
			}
			policy, err := buildRetentionPolicy(keep, maxAge)
			if err != nil {
				return err
			}

			removed, err := output.Prune(cfg.Output.Dir, cfg.Output.ReportLayout, policy, dryRun)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				if removed == nil {
					removed = []string{}
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"removed": removed,
					"dry_run": dryRun,
				})
			}

			verb := "Removed"
			if dryRun {
				verb = "Would remove"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d report(s)\n", verb, len(removed))
			for _, p := range removed {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", filepath.Base(p))
			}
			return nil
		},
	}

	cmd.Flags().Int("keep", 0, "Keep the N newest reports")
	cmd.Flags().String("max-age", "", "Keep reports newer than this (e.g. 30d, 2w, 720h)")
	cmd.Flags().Bool("dry-run", false, "Show what would be removed without deleting")

	return cmd
}

// buildRetentionPolicy constructs a retention policy from a count and an age.
func buildRetentionPolicy(maxCount int, maxAge string) (output.RetentionPolicy, error) {
	var policies []output.RetentionPolicy

	if maxCount > 0 {
		policies = append(policies, &output.CountPolicy{MaxCount: maxCount})
	}

	if maxAge != "" {
		d, err := output.ParseAge(maxAge)
		if err != nil {
			return nil, fmt.Errorf("invalid max age: %w", err)
		}
		policies = append(policies, &output.AgePolicy{MaxAge: d})
	}

	if len(policies) == 0 {
		return &output.CountPolicy{MaxCount: constants.DefaultKeepReports}, nil
	}

	if len(policies) == 1 {
		return policies[0], nil
	}

	return &output.CompositePolicy{Policies: policies}, nil
}
