package cmd

import (
	"fmt"
	"time"

	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/azdo"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/pipeline"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/provision"
	"github.com/spf13/cobra"
)

func pipelineCmd(opts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run and monitor the deployment pipeline",
	}

	cmd.AddCommand(pipelineWatchCmd(opts))

	return cmd
}

func pipelineWatchCmd(opts *GlobalOptions) *cobra.Command {
	defaults := azdo.DefaultWatchOptions()
	var interval, timeout time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Queue a pipeline run and poll it until it finishes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(opts)
			if err != nil {
				return err
			}

			connection, err := newDevOpsConnection(cmd, cfg)
			if err != nil {
				return err
			}

			provider := pipeline.NewProvider(
				connection, nil, provision.NewRunner(), newConsole(opts), cfg)
			completed, err := provider.RunAndWatch(cmd.Context(), azdo.WatchOptions{
				Interval: interval,
				MaxWait:  timeout,
			})
			if err != nil {
				return err
			}

			if !azdo.BuildSucceeded(completed) {
				return fmt.Errorf("pipeline run did not succeed")
			}

			return nil
		},
	}

	cmd.Flags().DurationVar(
		&interval, "interval", defaults.Interval, "Polling interval")
	cmd.Flags().DurationVar(
		&timeout, "timeout", defaults.MaxWait, "Maximum time to wait for the run to finish")

	return cmd
}
