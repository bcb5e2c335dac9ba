package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"postcraft/pipeline"
	"postcraft/shared/kafka"
	"postcraft/types"
)

type jobPublisher interface {
	Publish(key string, value any) error
}

func newEnqueueCommand() *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "enqueue VIDEO_ID",
		Short: "Queue a generation job for the worker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(args[0])
			if err != nil {
				return err
			}

			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.RequestTopic)
			if err != nil {
				return err
			}
			defer producer.Close()

			return enqueue(cmd.OutOrStdout(), producer, req)
		},
	}

	flags.bind(cmd)

	return cmd
}

func enqueue(w io.Writer, pub jobPublisher, req pipeline.Request) error {
	job := types.NewGenerationJob(req.VideoID, req.Languages, req.Platforms, req.Instruction)
	if err := pub.Publish(job.ID, job); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, job.ID)
	return err
}
