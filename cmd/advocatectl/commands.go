package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"advocatehub/internal/advocate/models"
	"advocatehub/internal/client/state"
	"advocatehub/internal/search"
)

type searchFlags struct {
	city       string
	specialty  string
	degree     string
	experience string
	pages      int
	local      bool
}

func newSearchCmd(opts *options) *cobra.Command {
	f := &searchFlags{}
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search advocates by free text and filters",
		Long: `Search advocates by name, city or specialty, optionally narrowed by
filters. With --local the filters are applied to the loaded pages on this
machine instead of being sent to the server.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return runSearch(cmd, opts, f, query)
		},
	}
	cmd.Flags().StringVar(&f.city, "city", "", "city substring")
	cmd.Flags().StringVar(&f.specialty, "specialty", "", "specialty substring")
	cmd.Flags().StringVar(&f.degree, "degree", "", "exact degree, e.g. MD")
	cmd.Flags().StringVar(&f.experience, "experience", "", "experience bucket: 0-2, 3-5, 6-10, 11-15, 16-20, 20+")
	cmd.Flags().IntVar(&f.pages, "pages", 1, "pages to load")
	cmd.Flags().BoolVar(&f.local, "local", false, "filter loaded pages locally")
	return cmd
}

func runSearch(cmd *cobra.Command, opts *options, f *searchFlags, query string) error {
	ctx, cancel := opts.context(cmd)
	defer cancel()

	sess, err := opts.open(ctx)
	if err != nil {
		return err
	}
	defer sess.close()
	c := sess.container

	apply := func() {
		c.SetSearchQuery(query)
		c.SetFilters(state.FilterPatch{
			City:       &f.city,
			Specialty:  &f.specialty,
			Degree:     &f.degree,
			Experience: &f.experience,
		})
	}
	if !f.local {
		apply()
	}
	if err := c.FetchAdvocates(ctx); err != nil {
		return fmt.Errorf("fetch advocates: %w", err)
	}
	for i := 1; i < f.pages; i++ {
		if err := c.LoadMore(ctx); err != nil {
			return fmt.Errorf("load page %d: %w", i+1, err)
		}
	}
	if f.local {
		apply()
	}

	snap := c.Snapshot()
	out := cmd.OutOrStdout()
	if opts.json {
		return writeJSON(out, struct {
			Data       []models.Advocate `json:"data"`
			Pagination search.Pagination `json:"pagination"`
		}{snap.FilteredAdvocates, snap.Pagination})
	}

	if c.View() == state.ViewEmpty {
		fmt.Fprintln(out, "No advocates found")
		return nil
	}
	if err := writeAdvocates(out, snap.FilteredAdvocates); err != nil {
		return err
	}
	p := snap.Pagination
	fmt.Fprintf(out, "\nshowing %d of %d (page %d/%d)", len(snap.FilteredAdvocates), p.Total, p.Page, p.TotalPages)
	if p.HasMore {
		fmt.Fprint(out, ", more available")
	}
	fmt.Fprintln(out)
	return nil
}

func newStatsCmd(opts *options) *cobra.Command {
	var pages int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize loaded advocates and list filter values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			sess, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer sess.close()
			c := sess.container

			if err := c.FetchAdvocates(ctx); err != nil {
				return fmt.Errorf("fetch advocates: %w", err)
			}
			for i := 1; i < pages; i++ {
				if err := c.LoadMore(ctx); err != nil {
					return fmt.Errorf("load page %d: %w", i+1, err)
				}
			}

			stats, filterOpts := c.Stats(), c.FilterOptions()
			out := cmd.OutOrStdout()
			if opts.json {
				return writeJSON(out, struct {
					Stats   search.Stats         `json:"stats"`
					Options search.FilterOptions `json:"filterOptions"`
				}{stats, filterOpts})
			}
			return writeStats(out, stats, filterOpts)
		},
	}
	cmd.Flags().IntVar(&pages, "pages", 1, "pages to load before summarizing")
	return cmd
}

func newHistoryCmd(opts *options) *cobra.Command {
	var clearAll bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or clear recent searches",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			sess, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer sess.close()

			out := cmd.OutOrStdout()
			if clearAll {
				if err := sess.container.ClearHistory(ctx); err != nil {
					return fmt.Errorf("clear history: %w", err)
				}
				fmt.Fprintln(out, "Search history cleared")
				return nil
			}

			entries := sess.container.History()
			if opts.json {
				return writeJSON(out, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No recent searches")
				return nil
			}
			return writeHistory(out, entries)
		},
	}
	cmd.Flags().BoolVar(&clearAll, "clear", false, "forget every remembered search")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeAdvocates(w io.Writer, advocates []models.Advocate) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCITY\tDEGREE\tSPECIALTIES\tYEARS\tPHONE")
	for _, a := range advocates {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\n",
			a.FullName(), a.City, a.Degree, strings.Join(a.Specialties, ", "), a.YearsOfExperience, a.PhoneNumber)
	}
	return tw.Flush()
}

func writeStats(w io.Writer, stats search.Stats, options search.FilterOptions) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Advocates\t%d\n", stats.TotalAdvocates)
	fmt.Fprintf(tw, "Cities\t%d\n", stats.CitiesCount)
	fmt.Fprintf(tw, "Specialties\t%d\n", stats.SpecialtiesCount)
	fmt.Fprintf(tw, "Average experience\t%d years\n", stats.AverageExperience)
	for _, b := range search.Buckets {
		fmt.Fprintf(tw, "  %s\t%d\n", b.Label, stats.ExperienceDistribution[b.Code])
	}
	fmt.Fprintf(tw, "City options\t%s\n", labels(options.Cities))
	fmt.Fprintf(tw, "Specialty options\t%s\n", labels(options.Specialties))
	return tw.Flush()
}

func writeHistory(w io.Writer, entries []state.HistoryEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tQUERY\tFILTERS\tRESULTS")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", e.Timestamp.Format("2006-01-02 15:04"), e.Query, describeFilters(e.Filters), e.ResultsCount)
	}
	return tw.Flush()
}

func describeFilters(f state.Filters) string {
	var parts []string
	for _, kv := range [][2]string{
		{search.ParamCity, f.City},
		{search.ParamSpecialty, f.Specialty},
		{search.ParamDegree, f.Degree},
		{search.ParamExperience, f.Experience},
	} {
		if kv[1] != "" {
			parts = append(parts, kv[0]+"="+kv[1])
		}
	}
	return strings.Join(parts, " ")
}

func labels(opts []search.Option) string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Label)
	}
	return strings.Join(out, ", ")
}
