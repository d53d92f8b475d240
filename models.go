package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/skillmatch/internal/database"
	"github.com/muhammadolammi/skillmatch/internal/skills"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

const (
	requestQueue   = "match_requests"
	updateExchange = "match_updates"
)

const (
	statusProcessing = "processing"
	statusCompleted  = "completed"
	statusFailed     = "failed"
)

type objectFetcher interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

type resumeLookup interface {
	GetResume(ctx context.Context, id uuid.UUID) (database.Resume, error)
}

type updatePublisher interface {
	Publish(update MatchUpdate) error
}

// deliverySource hands each worker its own stream of request deliveries and
// a func that releases it.
type deliverySource interface {
	Consume(workerID int) (<-chan amqp.Delivery, func(), error)
}

type WorkerConfig struct {
	Extractor  *skills.Extractor
	Objects    objectFetcher
	Resumes    resumeLookup // nil without DB_URL
	Updates    updatePublisher
	Deliveries deliverySource
	Logger     *zap.Logger
}

// MatchRequest is one resume/job pair delivered on the match_requests queue.
// Either ResumeID (looked up in the resumes table) or ObjectKey must be set.
type MatchRequest struct {
	ID             uuid.UUID  `json:"id"`
	ResumeID       *uuid.UUID `json:"resume_id,omitempty"`
	ObjectKey      string     `json:"object_key,omitempty"`
	Mime           string     `json:"mime,omitempty"`
	Filename       string     `json:"filename,omitempty"`
	JobDescription string     `json:"job_description"`
}

// MatchUpdate is published to the match_updates exchange under match.<id>.
type MatchUpdate struct {
	RequestID uuid.UUID      `json:"request_id"`
	Status    string         `json:"status"`
	Message   string         `json:"message"`
	Report    *skills.Report `json:"report,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
