package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSubmitCommand(ctx *commandContext) *cobra.Command {
	var req submitRequest

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a narrated-video job to the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}

			req.TaskID = strings.TrimSpace(req.TaskID)
			if req.TaskID == "" {
				return fmt.Errorf("--task-id is required")
			}
			if len(req.AudioURLs) == 0 {
				return fmt.Errorf("at least one --audio URL is required")
			}

			resp, err := client.Submit(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("submit job: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Job accepted\n")
			fmt.Fprintf(out, "  video_id: %s\n", resp.VideoID)
			fmt.Fprintf(out, "  task_id:  %s\n", resp.TaskID)
			fmt.Fprintf(out, "  status:   %s\n", resp.Status)
			fmt.Fprintf(out, "Poll with: storyreel status %s\n", resp.VideoID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.TaskID, "task-id", "", "Caller-supplied task identifier")
	cmd.Flags().StringVar(&req.StoryName, "story", "", "Story title rendered as the top caption")
	cmd.Flags().StringVar(&req.Chapter, "chapter", "", "Chapter label rendered as the bottom caption")
	cmd.Flags().StringVar(&req.ImagePath, "image", "", "Path to the still image, as seen by the daemon")
	cmd.Flags().StringArrayVar(&req.AudioURLs, "audio", nil, "Narration audio URL (repeatable, ordered)")
	cmd.Flags().StringVar(&req.WebhookURL, "webhook", "", "URL notified when the job completes")

	cobra.CheckErr(cmd.MarkFlagRequired("story"))
	cobra.CheckErr(cmd.MarkFlagRequired("chapter"))
	cobra.CheckErr(cmd.MarkFlagRequired("image"))

	return cmd
}
