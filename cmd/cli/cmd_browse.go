package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wadjakorntonsri/committee-site/pkg/adapters/repository/jsonstore"
	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
	"github.com/wadjakorntonsri/committee-site/pkg/core/reveal"
	"github.com/wadjakorntonsri/committee-site/pkg/core/selection"
	"github.com/wadjakorntonsri/committee-site/pkg/core/services"
)

type browseOptions struct {
	tab     string
	query   string
	years   []string
	formats []string
	pages   int
	delay   time.Duration
}

func (c *cli) browseCmd() *cobra.Command {
	opts := &browseOptions{}
	cmd := &cobra.Command{
		Use:       "browse events|documents",
		Short:     "List events or documents, revealing more on Enter",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"events", "documents"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.tab, "tab", domain.TabAll, "Tab to show")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "Search in titles and descriptions")
	cmd.Flags().StringSliceVar(&opts.years, "year", nil, "Only documents of these years")
	cmd.Flags().StringSliceVar(&opts.formats, "format", nil, "Only documents in these formats")
	cmd.Flags().IntVar(&opts.pages, "pages", 0, "Reveal this many extra pages without prompting (0 = interactive)")
	cmd.Flags().DurationVar(&opts.delay, "delay", c.cfg.RevealDelay, "Delay before more records appear")
	return cmd
}

// page renders the listing for a visible count and returns the filtered total.
type pageFunc func(visible int) (total int)

func (c *cli) runBrowse(cmd *cobra.Command, kind string, opts *browseOptions) error {
	store, err := jsonstore.Open(c.cfg.ContentDir)
	if err != nil {
		return err
	}
	loc, err := c.cfg.Location()
	if err != nil {
		return err
	}
	svc := services.NewContentService(store, c.cfg.PageSize, loc)

	state := domain.FilterState{Tab: opts.tab, Query: opts.query, Years: opts.years}
	for _, f := range opts.formats {
		state.Formats = append(state.Formats, domain.Format(f))
	}

	out := cmd.OutOrStdout()
	var render pageFunc
	switch kind {
	case "events":
		printTabs(out, selection.EventTabs, state.Normalize(svc.PageSize()).Tab)
		render = func(visible int) int {
			state.Visible = visible
			page := svc.Events(state, "")
			printEvents(out, page.Items)
			return page.Total
		}
	case "documents":
		printTabs(out, selection.DocumentTabs, state.Normalize(svc.PageSize()).Tab)
		render = func(visible int) int {
			state.Visible = visible
			page := svc.Documents(state, "")
			printDocuments(out, page)
			return page.Total
		}
	default:
		return fmt.Errorf("unknown listing %q (want events or documents)", kind)
	}

	ctrl := reveal.New(svc.PageSize(), opts.delay)
	ctrl.Reset(render(svc.PageSize()))
	return c.revealLoop(cmd.Context(), cmd.InOrStdin(), out, ctrl, render, opts.pages)
}

// revealLoop asks for more records until the listing is exhausted. With
// pages > 0 it reveals that many pages without reading input.
func (c *cli) revealLoop(ctx context.Context, in io.Reader, out io.Writer, ctrl *reveal.Controller, render pageFunc, pages int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	lines := bufio.NewScanner(in)
	for n := 0; ctrl.HasMore(); n++ {
		st := ctrl.State()
		if pages > 0 {
			if n >= pages {
				break
			}
		} else {
			fmt.Fprintf(out, "-- showing %d of %d, Enter for more, q to quit --\n", st.Visible, st.Total)
			if !lines.Scan() || strings.EqualFold(strings.TrimSpace(lines.Text()), "q") {
				break
			}
		}
		if _, err := ctrl.RevealMore(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out)
		ctrl.SetTotal(render(ctrl.Visible()))
	}
	st := ctrl.State()
	fmt.Fprintf(out, "%d of %d shown\n", st.Visible, st.Total)
	return nil
}

// printTabs marks the active tab with brackets.
func printTabs(w io.Writer, tabs []domain.TabOption, active string) {
	labels := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.ID == active {
			labels = append(labels, "["+t.Label+"]")
			continue
		}
		labels = append(labels, t.Label)
	}
	fmt.Fprintf(w, "Tabs: %s\n", strings.Join(labels, "  "))
}

func printEvents(w io.Writer, records []domain.ContentRecord) {
	for _, r := range records {
		fmt.Fprintf(w, "%s  %-14s  %-10s  %s  (#%s)\n", r.Date, r.Icon.Resolve(), r.Category.Label(), r.Title, r.ID)
	}
}

func printDocuments(w io.Writer, page services.DocumentsPage) {
	if len(page.Featured) > 0 {
		fmt.Fprintln(w, "Featured:")
		for _, d := range page.Featured {
			fmt.Fprintf(w, "  * %s (%s)\n", d.Title, d.Format.Meta().Label)
		}
	}
	for _, g := range page.Groups {
		fmt.Fprintf(w, "%s\n", g.Label)
		for _, d := range g.Items {
			fmt.Fprintf(w, "  %s  %-4s  %-11s  %s  %s\n", d.Date, d.Format.Meta().Label, d.Category.Label(), d.Title, d.Size)
		}
	}
}
