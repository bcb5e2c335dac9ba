package worker

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"postcraft/config"
	"postcraft/pipeline"
	sharedKafka "postcraft/shared/kafka"
	"postcraft/types"
)

// Generator runs one post generation
type Generator interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

// Publisher sends a message keyed by key
type Publisher interface {
	Publish(key string, value any) error
}

// Worker turns queued GenerationJobs into published GenerationResults
type Worker struct {
	gen  Generator
	pub  Publisher
	seen SeenStore
	now  func() time.Time
}

// Option configures a Worker
type Option func(*Worker)

// WithSeenStore skips jobs that were already published
func WithSeenStore(s SeenStore) Option {
	return func(w *Worker) { w.seen = s }
}

// New creates a worker
func New(gen Generator, pub Publisher, opts ...Option) *Worker {
	w := &Worker{gen: gen, pub: pub, now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Handler adapts the worker to the shared Kafka consumer. Invalid jobs are
// marked and skipped; a failed generation still publishes a result and is
// marked, so only a publish failure leaves the message for redelivery.
func (w *Worker) Handler() *sharedKafka.TypedMessageHandler[types.GenerationJob] {
	return &sharedKafka.TypedMessageHandler[types.GenerationJob]{
		Validate:   validateJob,
		Process:    w.Process,
		AlwaysMark: true,
	}
}

func validateJob(job *types.GenerationJob) error {
	if strings.TrimSpace(job.VideoID) == "" {
		return errors.New("job " + job.ID + " has no video id")
	}
	if len(job.Platforms) == 0 {
		return errors.New("job " + job.ID + " has no platforms")
	}
	if _, err := types.ParsePlatforms(job.Platforms); err != nil {
		return err
	}
	return nil
}

// Process generates posts for one job and publishes the outcome
func (w *Worker) Process(ctx context.Context, job *types.GenerationJob) error {
	if w.alreadyDone(ctx, job.ID) {
		log.Printf("⚠️  Job %s was already processed, skipping", job.ID)
		return nil
	}

	log.Printf("🎬 Processing job %s: video=%s", job.ID, job.VideoID)

	platforms, err := types.ParsePlatforms(job.Platforms)
	if err != nil {
		return w.publish(ctx, w.failed(job, err))
	}

	res, err := w.gen.Run(ctx, pipeline.Request{
		VideoID:     job.VideoID,
		Languages:   job.Languages,
		Platforms:   platforms,
		Instruction: job.Instruction,
	})
	if err != nil {
		log.Printf("❌ Job %s failed: %v", job.ID, err)
		return w.publish(ctx, w.failed(job, err))
	}

	log.Printf("✅ Job %s produced %d posts", job.ID, len(res.Posts))
	return w.publish(ctx, types.GenerationResult{
		JobID:       job.ID,
		VideoID:     job.VideoID,
		Title:       res.Title,
		Status:      types.JobStatusSuccess,
		Posts:       res.Posts,
		CompletedAt: w.now(),
	})
}

func (w *Worker) failed(job *types.GenerationJob, err error) types.GenerationResult {
	return types.GenerationResult{
		JobID:       job.ID,
		VideoID:     job.VideoID,
		Status:      types.JobStatusFailed,
		Error:       err.Error(),
		CompletedAt: w.now(),
	}
}

func (w *Worker) publish(ctx context.Context, result types.GenerationResult) error {
	if err := w.pub.Publish(result.JobID, result); err != nil {
		return err
	}
	if w.seen != nil && result.JobID != "" {
		if err := w.seen.Remember(ctx, result.JobID); err != nil {
			log.Printf("⚠️  Could not record job %s as processed: %v", result.JobID, err)
		}
	}
	return nil
}

// alreadyDone treats a seen store fault as not seen
func (w *Worker) alreadyDone(ctx context.Context, jobID string) bool {
	if w.seen == nil || jobID == "" {
		return false
	}
	seen, err := w.seen.Seen(ctx, jobID)
	if err != nil {
		log.Printf("⚠️  Seen check failed for job %s: %v", jobID, err)
		return false
	}
	return seen
}

// Config holds the worker's Kafka settings
type Config struct {
	Brokers     []string
	JobTopic    string
	ResultTopic string
	GroupID     string
}

// StartWithGracefulShutdown consumes jobs until SIGINT or SIGTERM
func StartWithGracefulShutdown(ctx context.Context, cfg Config, gen Generator, opts ...Option) error {
	producer, err := sharedKafka.NewProducer(cfg.Brokers, cfg.ResultTopic)
	if err != nil {
		return err
	}
	defer producer.Close()

	w := New(gen, producer, opts...)
	consumer, err := sharedKafka.NewConsumer(sharedKafka.ConsumerConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.JobTopic,
		GroupID: cfg.GroupID,
		Handler: w.Handler(),
	})
	if err != nil {
		return err
	}

	return sharedKafka.RunUntilSignal(ctx, consumer, config.ShutdownDrainInterval)
}
