package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/muhammadolammi/skillmatch/internal/config"
	"github.com/streadway/amqp"
)

// --- File Download ---

func newR2Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	r2 := cfg.Worker.R2
	awsConfig, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r2.AccessKey, r2.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating aws config: %w", err)
	}
	endpoint := cfg.R2Endpoint()
	return s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = cfg.Worker.S3Endpoint != ""
	}), nil
}

func DownloadFromR2(ctx context.Context, client *s3.Client, bucket, key string) ([]byte, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	_, err = io.Copy(buf, out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return buf.Bytes(), nil
}

type r2Fetcher struct {
	client *s3.Client
	bucket string
}

func (f *r2Fetcher) Fetch(ctx context.Context, key string) ([]byte, error) {
	return DownloadFromR2(ctx, f.client, f.bucket, key)
}

// --- Requests ---

type amqpSource struct {
	conn *amqp.Connection
}

// Consume opens a channel of its own for one worker and starts consuming
// match_requests with manual acks.
func (s *amqpSource) Consume(workerID int) (<-chan amqp.Delivery, func(), error) {
	ch, err := s.conn.Channel()
	if err != nil {
		return nil, nil, fmt.Errorf("error connecting to rabbitmq channel: %w", err)
	}
	closeFn := func() { _ = ch.Close() }

	_, err = ch.QueueDeclare(
		requestQueue, // queue name
		true,         // durable (survives broker restarts)
		false,        // auto-delete when unused
		false,        // exclusive
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("failed to set qos: %w", err)
	}

	msgs, err := ch.Consume(
		requestQueue,                           // queue name
		fmt.Sprintf("skillmatch-%d", workerID), // consumer tag
		false,                                  // auto-ack
		false,                                  // exclusive
		false,                                  // no-local
		false,                                  // no-wait
		nil,                                    // arguments
	)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("error consuming rabbitmq message: %w", err)
	}
	return msgs, closeFn, nil
}

// --- Updates ---

type amqpPublisher struct {
	conn *amqp.Connection
}

func declareUpdateExchange(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	return ch.ExchangeDeclare(
		updateExchange, // name
		"topic",        // kind
		true,           // durable
		false,          // auto-delete
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
}

func (p *amqpPublisher) Publish(update MatchUpdate) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal update: %w", err)
	}
	routingKey := fmt.Sprintf("match.%s", update.RequestID)

	return ch.Publish(
		updateExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
