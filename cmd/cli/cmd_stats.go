package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wadjakorntonsri/committee-site/pkg/adapters/apiclient"
	"github.com/wadjakorntonsri/committee-site/pkg/adapters/guard"
	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
	"github.com/wadjakorntonsri/committee-site/pkg/core/services"
)

func (c *cli) statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show or change the view, like and share counters of a record",
	}

	ops := []struct {
		use   string
		short string
		run   func(*services.Counter, context.Context) (domain.CounterState, error)
	}{
		{"show <id>", "Show the counters", nil},
		{"view <id>", "Count a view (once per invocation)", (*services.Counter).IncrementView},
		{"like <id>", "Like the record, or remove the like given from this machine", (*services.Counter).ToggleLike},
		{"share <id>", "Count a share", (*services.Counter).IncrementShare},
	}
	for _, op := range ops {
		cmd.AddCommand(&cobra.Command{
			Use:   op.use,
			Short: op.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.runCounter(cmd, args[0], op.run)
			},
		})
	}
	cmd.AddCommand(c.topCmd())
	return cmd
}

func (c *cli) runCounter(cmd *cobra.Command, id string, op func(*services.Counter, context.Context) (domain.CounterState, error)) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
	defer cancel()

	client := apiclient.New(c.serverURL, nil)
	guards := guard.NewFileStore(c.deviceFile)
	counter := services.NewCounter(ctx, id, client, services.Guards{
		Viewed: guards.Session(""),
		Liked:  guards.Device(""),
	}, c.log)
	defer counter.Close()

	st := counter.State()
	if op != nil {
		var err error
		if st, err = op(counter, ctx); err != nil {
			return err
		}
	}
	printCounter(cmd.OutOrStdout(), id, st)
	return nil
}

func printCounter(w io.Writer, id string, st domain.CounterState) {
	liked := ""
	if st.Liked {
		liked = " (liked)"
	}
	fmt.Fprintf(w, "#%s  views %d  likes %d%s  shares %d\n", id, st.Views, st.Likes, liked, st.Shares)
}

func (c *cli) topCmd() *cobra.Command {
	var (
		kind  string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "top",
		Short: "List the records with the highest counter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := domain.ParseStatKind(kind)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
			defer cancel()

			rows, err := apiclient.New(c.serverURL, nil).Top(ctx, k, limit)
			if err != nil {
				return err
			}
			for i, s := range rows {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. #%s  %s %d\n", i+1, s.RecordID, k, s.Get(k))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(domain.StatViews), "views, likes or shares")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of records")
	return cmd
}
