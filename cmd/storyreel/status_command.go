package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <video_id>",
		Short: "Show the status of a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}

			job, err := client.Status(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintf(out, "video_id:   %s\n", job.VideoID)
			fmt.Fprintf(out, "task_id:    %s\n", job.TaskID)
			fmt.Fprintf(out, "status:     %s\n", colorStatus(job.Status, colorize))
			if job.URL != "" {
				fmt.Fprintf(out, "url:        %s\n", job.URL)
			}
			if job.Error != "" {
				fmt.Fprintf(out, "error:      %s\n", job.Error)
			}
			if job.WebhookURL != "" {
				fmt.Fprintf(out, "webhook:    %s\n", job.WebhookURL)
			}
			fmt.Fprintf(out, "created_at: %s\n", job.CreatedAt.Local().Format(time.RFC3339))
			fmt.Fprintf(out, "updated_at: %s\n", job.UpdatedAt.Local().Format(time.RFC3339))
			return nil
		},
	}
}

func newPingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the daemon is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			if err := client.Ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "daemon is healthy")
			return nil
		},
	}
}

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func colorStatus(status string, colorize bool) string {
	if !colorize {
		return status
	}
	switch status {
	case "completed":
		return ansiGreen + status + ansiReset
	case "failed":
		return ansiRed + status + ansiReset
	case "processing":
		return ansiYellow + status + ansiReset
	default:
		return status
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
