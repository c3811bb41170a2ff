// Package kafka prepares the export-events topic and probes broker readiness
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// EnsureTopics creates topics that do not exist yet. Already existing topics count as success.
func EnsureTopics(ctx context.Context, brokerAddr string, tries int, delay time.Duration, topics ...string) error {
	client := &kafkago.Client{
		Addr:    kafkago.TCP(brokerAddr),
		Timeout: 10 * time.Second,
	}

	req := kafkago.CreateTopicsRequest{
		Topics: make([]kafkago.TopicConfig, 0, len(topics)),
	}
	for _, t := range topics {
		req.Topics = append(req.Topics, kafkago.TopicConfig{
			Topic:             t,
			NumPartitions:     1,
			ReplicationFactor: 1,
		})
	}

	var lastErr error
	for i := 0; i < tries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		resp, err := client.CreateTopics(ctx, &req)
		if err != nil {
			lastErr = err
			log.Printf("Failed to run topics creation request: %v\nWait %v before next try...", err, delay)
			continue
		}

		if lastErr = topicErrors(resp.Errors); lastErr == nil {
			log.Println("All topics are in place!")
			return nil
		}
		log.Println("Topics creation failed:", lastErr)
	}
	return fmt.Errorf("topics not created after %d tries: %w", tries, lastErr)
}

func topicErrors(errs map[string]error) error {
	var res []error
	for topic, err := range errs {
		if err == nil || errors.Is(err, kafkago.TopicAlreadyExists) {
			continue
		}
		res = append(res, fmt.Errorf("topic %q: %w", topic, err))
	}
	return errors.Join(res...)
}

// WaitKafkaReady dials the broker until it answers or tries run out.
func WaitKafkaReady(ctx context.Context, brokerAddr string, tries int, delay time.Duration) error {
	var lastErr error
	for i := 0; i < tries; i++ {
		conn, err := kafkago.DialContext(ctx, "tcp", brokerAddr)
		if err == nil {
			if errConn := conn.Close(); errConn != nil {
				log.Println("Failed to close connection after testing Kafka readyness:", errConn)
			}
			log.Println("Kafka is ready!")
			return nil
		}
		lastErr = err
		log.Printf("Kafka not ready, retrying in %v...", delay)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("kafka %q not ready after %d tries: %w", brokerAddr, tries, lastErr)
}
