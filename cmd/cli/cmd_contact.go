package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wadjakorntonsri/committee-site/pkg/adapters/apiclient"
	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
)

func (c *cli) contactCmd() *cobra.Command {
	var req domain.ContactRequest
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message through the contact form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Checked locally first so an incomplete form never reaches the server.
			if err := req.Validate(); err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
			defer cancel()

			if err := apiclient.New(c.serverURL, nil).SubmitContact(ctx, req); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Message sent.")
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Your name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Your email address")
	cmd.Flags().StringVar(&req.Message, "message", "", "The message")
	return cmd
}
