package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

var workerCount int

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume match requests from RabbitMQ",
	Long:  "Consume match requests from the match_requests queue, download each resume from R2/S3 and publish the result to the match_updates exchange.",
	RunE:  runWorker,
}

func init() {
	workerCmd.Flags().IntVar(&workerCount, "workers", 0, "Number of consumers (overrides WORKER_COUNT)")
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.cfg.ValidateWorker(); err != nil {
		return err
	}
	count := a.cfg.Worker.Count
	if workerCount > 0 {
		count = workerCount
	}

	client, err := newR2Client(ctx, a.cfg)
	if err != nil {
		return err
	}

	conn, err := amqp.Dial(a.cfg.Worker.RabbitMQURL)
	if err != nil {
		return fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}
	defer conn.Close()
	if err := declareUpdateExchange(conn); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	workerConfig := WorkerConfig{
		Extractor:  a.extractor,
		Objects:    &r2Fetcher{client: client, bucket: a.cfg.Worker.R2.Bucket},
		Updates:    &amqpPublisher{conn: conn},
		Deliveries: &amqpSource{conn: conn},
		Logger:     a.logger,
	}
	if a.queries != nil {
		workerConfig.Resumes = a.queries
	}

	a.logger.Info("starting consumer pool", zap.Int("workers", count))
	return workerConfig.StartConsumerWorkerPool(ctx, count)
}
