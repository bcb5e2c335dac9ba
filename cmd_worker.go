package main

import (
	"log"

	"github.com/spf13/cobra"

	"postcraft/config"
	"postcraft/worker"
)

func newWorkerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Process generation jobs from Kafka",
		Long: `Consume GenerationJob messages from the request topic and publish one
GenerationResult per job to the result topic. Stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			p, cleanup, err := buildPipeline(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			var opts []worker.Option
			if cfg.RedisAddr != "" {
				seen, err := worker.NewRedisSeen(cfg.RedisAddr, cfg.RedisPass, config.JobSeenTTL)
				if err != nil {
					log.Printf("⚠️  Redelivery guard disabled: %v", err)
				} else {
					defer seen.Close()
					opts = append(opts, worker.WithSeenStore(seen))
				}
			}

			log.Println("📨 Running in KAFKA worker mode")
			log.Printf("🔗 Kafka Brokers: %v", cfg.KafkaBrokers)
			log.Printf("📋 Jobs: %s -> Results: %s", cfg.RequestTopic, cfg.ResultTopic)
			log.Printf("👥 Consumer Group: %s", cfg.GroupID)

			return worker.StartWithGracefulShutdown(cmd.Context(), worker.Config{
				Brokers:     cfg.KafkaBrokers,
				JobTopic:    cfg.RequestTopic,
				ResultTopic: cfg.ResultTopic,
				GroupID:     cfg.GroupID,
			}, p, opts...)
		},
	}

	return cmd
}
