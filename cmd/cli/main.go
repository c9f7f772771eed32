package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"maridash/app"
	"maridash/domain/topic"
	"maridash/internal"
	"maridash/internal/config"
	"maridash/internal/container"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(loadDashboard).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// dashboardLoader builds the service lazily so `--help` works without config
type dashboardLoader func() (*app.DashboardService, error)

func loadDashboard() (*app.DashboardService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level), os.Stderr)
	return container.New(cfg, logger).Dashboard, nil
}

func newRootCmd(load dashboardLoader) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "maridash",
		Short:         "Inspect the topics and published artifacts behind the dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newTopicsCmd(load),
		newResolveCmd(load),
		newCheckCmd(load),
	)
	return rootCmd
}

func newTopicsCmd(load dashboardLoader) *cobra.Command {
	var sorted bool

	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List the search terms and their file keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dashboard, err := load()
			if err != nil {
				return err
			}

			topics := dashboard.Catalogue().All()
			if sorted {
				topics = dashboard.Catalogue().Sorted()
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "LABEL\tKEY")
			for _, t := range topics {
				fmt.Fprintf(w, "%s\t%s\n", t.Label, t.Key())
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&sorted, "sorted", false, "Sort alphabetically instead of dashboard order")
	return cmd
}

func newResolveCmd(load dashboardLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [topic]",
		Short: "Print every artifact URL of a topic",
		Long: `Print every artifact URL of a topic in dashboard order.

The topic may be given as its label or its key.

Example: maridash resolve "Deutsche Schifffahrt"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dashboard, err := load()
			if err != nil {
				return err
			}
			t, err := findTopic(dashboard.Catalogue(), args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, ref := range dashboard.References(t) {
				fmt.Fprintf(w, "%s\t%s\n", ref.Category, ref.URL)
			}
			return w.Flush()
		},
	}
}

func newCheckCmd(load dashboardLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "check [topic]",
		Short: "Fetch every artifact of a topic and report which ones are available",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dashboard, err := load()
			if err != nil {
				return err
			}
			t, err := findTopic(dashboard.Catalogue(), args[0])
			if err != nil {
				return err
			}

			results := dashboard.Fetch(cmd.Context(), t)

			present := 0
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, r := range results {
				if r.Present() {
					present++
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.Status, r.Reference.Category, r.Reference.URL)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d artifacts available for %q\n", present, len(results), t.Label)
			return nil
		},
	}
}

func findTopic(c *topic.Catalogue, arg string) (topic.Topic, error) {
	if t, ok := c.Lookup(arg); ok {
		return t, nil
	}
	if t, ok := c.LookupKey(arg); ok {
		return t, nil
	}
	return topic.Topic{}, fmt.Errorf("unknown topic %q (see `maridash topics`)", arg)
}
