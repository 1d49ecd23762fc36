package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"jobportal-client/internal/models"
	"jobportal-client/internal/optimistic"
	"jobportal-client/internal/savedjobs"
)

func newJobsCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Browse and manage job postings",
	}
	cmd.AddCommand(newJobsListCmd(a), newJobsGetCmd(a), newJobsSaveCmd(a))
	return cmd
}

func newJobsListCmd(a **app) *cobra.Command {
	var filter models.JobFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs matching a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := (*a).client.Jobs().List(cmd.Context(), filter)
			if err != nil {
				return friendly(err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tLOCATION\tTYPE\tSTATUS")
			for _, job := range page.Jobs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					job.ID, job.Title, job.Location, job.Type, job.Status)
			}
			w.Flush()
			fmt.Printf("\nPage %d of %d (%d jobs total)\n", page.Page, page.Pages, page.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.Keyword, "keyword", "", "search keyword")
	cmd.Flags().StringVar(&filter.Location, "location", "", "location filter")
	cmd.Flags().StringVar(&filter.Type, "type", "", "job type filter")
	cmd.Flags().StringVar(&filter.ExperienceLevel, "level", "", "experience level filter")
	cmd.Flags().IntVar(&filter.MinSalary, "min-salary", 0, "minimum salary")
	cmd.Flags().IntVar(&filter.MaxSalary, "max-salary", 0, "maximum salary")
	cmd.Flags().IntVar(&filter.Page, "page", 0, "result page")
	cmd.Flags().IntVar(&filter.Limit, "limit", 0, "results per page")
	cmd.Flags().StringVar(&filter.Sort, "sort", "", "sort order")
	return cmd
}

func newJobsGetCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <job-id>",
		Short: "Show one job posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := (*a).client.Jobs().Get(cmd.Context(), args[0])
			if err != nil {
				return friendly(err)
			}

			fmt.Printf("%s\n", job.Title)
			if job.Company != nil {
				fmt.Printf("Company:   %s\n", job.Company.Name)
			}
			fmt.Printf("Location:  %s\n", job.Location)
			fmt.Printf("Type:      %s\n", job.Type)
			if job.MinSalary > 0 || job.MaxSalary > 0 {
				fmt.Printf("Salary:    %d - %d\n", job.MinSalary, job.MaxSalary)
			}
			fmt.Printf("Status:    %s\n", job.Status)
			if job.Description != "" {
				fmt.Printf("\n%s\n", job.Description)
			}
			return nil
		},
	}
}

func newJobsSaveCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "save <job-id>",
		Short: "Save a job, or unsave it if already saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set := savedjobs.NewSet(
				(*a).client.Candidate(),
				optimistic.NewRunner((*a).log),
				(*a).log,
			)
			if err := set.Refresh(cmd.Context()); err != nil {
				return friendly(err)
			}

			jobID := args[0]
			if err := set.Toggle(cmd.Context(), jobID); err != nil {
				return friendly(err)
			}
			if set.Contains(jobID) {
				fmt.Println("Job saved")
			} else {
				fmt.Println("Job removed from saved jobs")
			}
			return nil
		},
	}
}
