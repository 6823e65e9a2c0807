package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"evalgo.org/hostreg/internal/registry"
)

var depsFormat string

var depsCmd = &cobra.Command{
	Use:   "deps [host-id]",
	Short: "Show what references a host",
	Long: `List every host, hostgroup and config that references the host,
and whether it could be removed now.

Examples:
  hostreg deps 5c1a7e0b2f
  hostreg deps 5c1a7e0b2f --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runDeps,
}

func init() {
	depsCmd.Flags().StringVar(&depsFormat, "format", "table", "output format (table, json)")
}

func runDeps(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	report, err := registry.NewService(store, registry.WithLogger(logger)).Dependents(ctx, args[0])
	if err != nil {
		return err
	}

	return printReport(cmd.OutOrStdout(), report, depsFormat)
}

func printReport(out io.Writer, report *registry.DependencyReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "table":
	default:
		return fmt.Errorf("unknown format: %s (use 'table' or 'json')", format)
	}

	if report.Deletable {
		fmt.Fprintf(out, "Host %s is not referenced and can be removed\n", report.HostID)
		return nil
	}

	fmt.Fprintf(out, "%s\n\n", report.Reason)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COLLECTION\tID\tNAME")
	for _, ref := range report.References {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ref.Collection, ref.ID, ref.Name)
	}
	return w.Flush()
}
