package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calder-io/spiguard/spi/events"
)

// NewRegistryCommand creates the registry command.
func NewRegistryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "List and self-check the event registry",
		Long: `Print every registered event with its payload schema and run the
registry consistency checks: event names and versions must be well
formed and every payload schema must be a known contract schema.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegistry(rootOpts, cmd)
		},
	}

	return cmd
}

// registryEntry is one event in the JSON listing.
type registryEntry struct {
	Event      string `json:"event"`
	Schema     string `json:"schema"`
	Introduced string `json:"introduced"`
}

// registryReport is the JSON payload of the registry command.
type registryReport struct {
	Events []registryEntry `json:"events"`
	Valid  bool            `json:"valid"`
	Errors []string        `json:"errors,omitempty"`
}

func runRegistry(opts *RootOptions, cmd *cobra.Command) error {
	formatter := formatterFor(opts, cmd)

	report := registryReport{Valid: true}
	for _, name := range events.Names() {
		entry, _ := events.Lookup(name)
		report.Events = append(report.Events, registryEntry{
			Event:      name,
			Schema:     entry.Schema,
			Introduced: entry.Introduced,
		})
	}
	for _, err := range events.Validate() {
		report.Valid = false
		report.Errors = append(report.Errors, err.Error())
	}

	if formatter.Format == "json" {
		if err := formatter.JSON(Response{Status: "ok", Data: report}); err != nil {
			return err
		}
	} else {
		for _, e := range report.Events {
			fmt.Fprintf(formatter.Writer, "%-32s %-20s since %s\n", e.Event, e.Schema, e.Introduced)
		}
		if report.Valid {
			fmt.Fprintf(formatter.Writer, "\n✓ %d event(s), registry consistent\n", len(report.Events))
		} else {
			fmt.Fprintln(formatter.Writer, "\n✗ registry inconsistent")
			for _, msg := range report.Errors {
				fmt.Fprintf(formatter.Writer, "  %s\n", msg)
			}
		}
	}

	if !report.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d registry error(s)", len(report.Errors)))
	}
	return nil
}
