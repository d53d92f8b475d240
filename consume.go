package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/skillmatch/internal/document"
	"github.com/muhammadolammi/skillmatch/internal/skills"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var retryBackoff = 500 * time.Millisecond

// retry retries a function up to `attempts` times with linear backoff
func retry[T any](ctx context.Context, attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(retryBackoff * time.Duration(i+1)):
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

// processRequest runs one match: resolve the resume, download it, extract
// its text and compare it with the job description.
func (wc *WorkerConfig) processRequest(ctx context.Context, req MatchRequest) (*skills.Report, error) {
	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, errors.New("job description is empty")
	}

	key, mime, filename := req.ObjectKey, req.Mime, req.Filename
	if req.ResumeID != nil {
		if wc.Resumes == nil {
			return nil, errors.New("resume_id given but no database is configured")
		}
		resume, err := wc.Resumes.GetResume(ctx, *req.ResumeID)
		if err != nil {
			return nil, fmt.Errorf("error getting resume %s: %w", *req.ResumeID, err)
		}
		key, mime, filename = resume.ObjectKey, resume.Mime, resume.OriginalFilename
	}
	if key == "" {
		return nil, errors.New("request has neither resume_id nor object_key")
	}
	if filename == "" {
		filename = key
	}

	fileBytes, err := retry(ctx, 3, func() ([]byte, error) {
		return wc.Objects.Fetch(ctx, key)
	})
	if err != nil {
		return nil, fmt.Errorf("file download error: %w", err)
	}

	resumeText, err := document.Extract(filename, mime, fileBytes)
	if err != nil {
		return nil, fmt.Errorf("text extraction error: %w", err)
	}

	report := skills.Analyze(wc.Extractor, resumeText, req.JobDescription)
	return &report, nil
}

func (wc *WorkerConfig) publish(id uuid.UUID, status, message string, report *skills.Report) {
	update := MatchUpdate{
		RequestID: id,
		Status:    status,
		Message:   message,
		Report:    report,
		Timestamp: time.Now().UTC(),
	}
	if err := wc.Updates.Publish(update); err != nil {
		wc.Logger.Warn("failed to publish update",
			zap.String("request_id", id.String()),
			zap.String("status", status),
			zap.Error(err))
	}
}

// handleDelivery decodes one queue message, runs it and publishes the outcome.
// It reports whether the message should go back on the queue, which only
// happens when ctx ends before the request is done.
func (wc *WorkerConfig) handleDelivery(ctx context.Context, workerID int, body []byte) (requeue bool) {
	req := MatchRequest{}
	if err := json.Unmarshal(body, &req); err != nil {
		wc.Logger.Error("error unmarshalling message body", zap.Int("worker", workerID), zap.Error(err))
		return false
	}
	if req.ID == uuid.Nil {
		wc.Logger.Error("match request without id", zap.Int("worker", workerID))
		return false
	}

	log := wc.Logger.With(zap.Int("worker", workerID), zap.String("request_id", req.ID.String()))
	log.Info("processing match request")
	wc.publish(req.ID, statusProcessing, "analysis started", nil)

	report, err := wc.processRequest(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			log.Info("match request interrupted, requeueing", zap.Error(err))
			return true
		}
		log.Warn("match request failed", zap.Error(err))
		wc.publish(req.ID, statusFailed, err.Error(), nil)
		return false
	}

	log.Info("match request completed",
		zap.Int("job_skills", len(report.JobSkills)),
		zap.Float64("score", report.Score))
	wc.publish(req.ID, statusCompleted, "analysis completed", report)
	return false
}

func (wc *WorkerConfig) worker(ctx context.Context, id int) error {
	msgs, closeFn, err := wc.Deliveries.Consume(id)
	if err != nil {
		return err
	}
	defer closeFn()
	return wc.consumeLoop(ctx, id, msgs)
}

// consumeLoop handles deliveries until ctx ends or msgs is closed.
func (wc *WorkerConfig) consumeLoop(ctx context.Context, id int, msgs <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}
			if wc.handleDelivery(ctx, id, msg.Body) {
				if err := msg.Nack(false, true); err != nil {
					wc.Logger.Warn("failed to requeue message", zap.Int("worker", id), zap.Error(err))
				}
				continue
			}
			if err := msg.Ack(false); err != nil {
				wc.Logger.Warn("failed to ack message", zap.Int("worker", id), zap.Error(err))
			}
		}
	}
}

// StartConsumerWorkerPool blocks until ctx is cancelled or a worker fails.
func (wc *WorkerConfig) StartConsumerWorkerPool(ctx context.Context, numWorkers int) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < numWorkers; i++ {
		id := i + 1
		wc.Logger.Info("worker started", zap.Int("worker", id))
		g.Go(func() error {
			return wc.worker(ctx, id)
		})
	}
	return g.Wait()
}
