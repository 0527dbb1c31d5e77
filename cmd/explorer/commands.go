package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"jepdash/internal/filter"
	"jepdash/internal/formatter"
	"jepdash/internal/report"
	"jepdash/pkg/metadata"
)

func addCriteriaFlags(cmd *cobra.Command, c *filter.Criteria) {
	cmd.Flags().StringVar(&c.Region, "region", filter.Wildcard, "Keep events in this region")
	cmd.Flags().StringVar(&c.City, "city", filter.Wildcard, "Keep events in this city")
	cmd.Flags().StringVar(&c.Theme, "theme", filter.Wildcard, "Keep events whose tags contain this theme")
	cmd.Flags().StringVar(&c.EventType, "type", filter.Wildcard, "Keep events of this type (Exhibition or Visit)")
	cmd.Flags().StringVar(&c.Pricing, "pricing", filter.Wildcard, "Keep events with this pricing condition")
}

func (a *app) enrichCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Print the enriched records as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := a.enriched(cmd.Context())
			if err != nil {
				return err
			}

			events := ds.Events
			if limit > 0 && limit < len(events) {
				events = events[:limit]
			}

			return writeJSON(cmd.OutOrStdout(), events)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Print at most n records (0 prints all)")

	return cmd
}

func (a *app) statsCmd() *cobra.Command {
	var (
		tab      string
		asJSON   bool
		criteria filter.Criteria
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the dashboard aggregates",
		Long: `Print the aggregates of every dashboard tab, or of one tab with --tab.
Tabs: ` + strings.Join(report.Tabs, ", ") + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if tab != "" && !slices.Contains(report.Tabs, tab) {
				return fmt.Errorf("unknown tab %q (expected one of %s)", tab, strings.Join(report.Tabs, ", "))
			}

			ds, err := a.enriched(cmd.Context())
			if err != nil {
				return err
			}

			d := report.NewBuilder(a.cfg.Analysis).Build(ds, criteria)
			out := cmd.OutOrStdout()

			if asJSON {
				return writeJSON(out, tabValue(d, tab))
			}

			if tab == "" {
				_, err = fmt.Fprintln(out, formatter.RenderDashboard(d))
			} else {
				_, err = fmt.Fprint(out, formatter.RenderTab(d, tab))
			}

			return err
		},
	}

	cmd.Flags().StringVarP(&tab, "tab", "t", "", "Only print this tab")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of markdown")
	addCriteriaFlags(cmd, &criteria)

	return cmd
}

func (a *app) filterCmd() *cobra.Command {
	var (
		asJSON   bool
		criteria filter.Criteria
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Select events matching the given criteria",
		Long: `Select events matching every given criterion. A criterion left at
"` + filter.Wildcard + `" matches everything, and a criterion on a column the
dataset lacks is ignored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := a.enriched(cmd.Context())
			if err != nil {
				return err
			}

			view := report.NewBuilder(a.cfg.Analysis).Map(ds, criteria)
			out := cmd.OutOrStdout()

			if asJSON {
				return writeJSON(out, view)
			}

			_, err = fmt.Fprint(out, formatter.RenderTab(&report.Dashboard{Map: view}, report.TabMap))

			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of markdown")
	addCriteriaFlags(cmd, &criteria)

	return cmd
}

func (a *app) optionsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List the selectable values of each filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := a.enriched(cmd.Context())
			if err != nil {
				return err
			}

			opts := filter.BuildOptions(ds, a.cfg.Analysis.TagDelimiter)
			out := cmd.OutOrStdout()

			if asJSON {
				return writeJSON(out, opts)
			}

			for _, o := range []struct {
				flag   string
				values []string
			}{
				{"region", opts.Regions},
				{"city", opts.Cities},
				{"theme", opts.Themes},
				{"type", opts.EventTypes},
				{"pricing", opts.Pricing},
			} {
				if o.values == nil {
					fmt.Fprintf(out, "--%s: unavailable\n", o.flag)
					continue
				}

				fmt.Fprintf(out, "--%s: %s\n", o.flag, strings.Join(o.values, ", "))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")

	return cmd
}

func (a *app) reportCmd() *cobra.Command {
	var (
		output   string
		criteria filter.Criteria
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a signed markdown report of every tab",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := a.enriched(cmd.Context())
			if err != nil {
				return err
			}

			d := report.NewBuilder(a.cfg.Analysis).Build(ds, criteria)
			signed := metadata.Sign(formatter.RenderDashboard(d), &metadata.Metadata{
				Dataset: ds.Source,
				Rows:    ds.Len(),
			})

			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), signed)
				return err
			}

			if err := os.WriteFile(output, []byte(signed+"\n"), 0644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			a.log.Info("report written", "path", output, "rows", ds.Len())

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the report to this file instead of stdout")
	addCriteriaFlags(cmd, &criteria)

	return cmd
}

func (a *app) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <report.md>",
		Short: "Check that a report still matches its signature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read report: %w", err)
			}

			meta, err := metadata.Verify(string(content))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (dataset %s, %d rows, signed %s)\n",
				args[0], meta.Dataset, meta.Rows, meta.LastModify.Format("2006-01-02 15:04"))

			return err
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	var save string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if save != "" {
				if err := a.cfg.SaveConfig(save); err != nil {
					return err
				}

				a.log.Info("configuration saved", "path", save)
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), a.cfg.String())

			return err
		},
	}

	cmd.Flags().StringVar(&save, "save", "", "Also write the effective configuration to this YAML file")

	return cmd
}

func tabValue(d *report.Dashboard, tab string) any {
	switch tab {
	case report.TabFrequency:
		return d.Frequency
	case report.TabAccessibility:
		return d.Accessibility
	case report.TabVisitTypes:
		return d.VisitTypes
	case report.TabMap:
		return d.Map
	default:
		return d
	}
}
