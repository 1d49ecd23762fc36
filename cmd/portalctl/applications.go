package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newApplyCmd(a **app) *cobra.Command {
	var resumeURL string

	cmd := &cobra.Command{
		Use:   "apply <job-id>",
		Short: "Apply to a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := (*a).client.Applications().Apply(cmd.Context(), args[0], resumeURL)
			if err != nil {
				return friendly(err)
			}
			fmt.Printf("Application submitted (%s)\n", application.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&resumeURL, "resume", "", "resume URL to attach")
	return cmd
}

func newApplicationsCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "applications",
		Short: "List your applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			applications, err := (*a).client.Applications().Mine(cmd.Context())
			if err != nil {
				return friendly(err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tJOB\tSTATUS\tAPPLIED")
			for _, application := range applications {
				title := ""
				if application.Job != nil {
					title = application.Job.Title
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					application.ID, title, application.Status, application.CreatedAt)
			}
			return w.Flush()
		},
	}
}
