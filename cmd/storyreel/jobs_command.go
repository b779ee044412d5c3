package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newJobsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "jobs",
		Short: "List all jobs known to the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}

			jobs, err := client.Jobs(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(jobs) == 0 {
				fmt.Fprintln(out, "No jobs")
				return nil
			}

			colorize := shouldColorize(out)
			rows := make([][]string, 0, len(jobs))
			for _, job := range jobs {
				detail := job.URL
				if job.Error != "" {
					detail = job.Error
				}
				rows = append(rows, []string{
					job.VideoID,
					job.TaskID,
					colorStatus(job.Status, colorize),
					job.UpdatedAt.Local().Format(time.RFC3339),
					detail,
				})
			}

			fmt.Fprintln(out, renderJobTable([]string{"VIDEO ID", "TASK ID", "STATUS", "UPDATED", "RESULT"}, rows))
			return nil
		},
	}
}
