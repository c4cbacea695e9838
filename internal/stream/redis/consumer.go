package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stackmeld/llmchain/internal/models"
	"github.com/stackmeld/llmchain/internal/runner"
)

type Consumer struct {
	client       *redis.Client
	stream       string
	groupID      string
	consumerName string
	resultStream string
	runner       *runner.Runner
	logger       *zerolog.Logger
}

func NewConsumer(client *redis.Client, cfg *StreamConfig, run *runner.Runner, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       cfg.Stream,
		groupID:      cfg.Group,
		consumerName: cfg.ConsumerName,
		resultStream: cfg.ResultStream,
		runner:       run,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		for _, msg := range msgs[0].Messages {
			c.process(ctx, msg)
		}
	}
}

func (c *Consumer) Stop() error {
	// No-op
	return nil
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("Message received")

	payload, ok := msg.Values["payload"].(string)
	if !ok {
		c.logger.Error().Str("id", msg.ID).Msg("Missing payload field")
		c.ack(ctx, msg.ID)
		return
	}

	var genRequest models.GenerationRequest
	if err := json.Unmarshal([]byte(payload), &genRequest); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		c.ack(ctx, msg.ID) // bad message, ACK to skip it
		return
	}

	result := models.GenerationResult{
		RequestID: genRequest.RequestID,
		Chain:     genRequest.Chain,
	}

	genResult, err := c.runner.Call(ctx, genRequest.Chain, genRequest.Inputs)
	if err != nil {
		result.Error = err.Error()
	} else {
		result.Output = genResult.Generation
		result.StopReason = genResult.StopReason
	}

	c.publish(ctx, msg.ID, result)
	c.ack(ctx, msg.ID)
}

func (c *Consumer) publish(ctx context.Context, msgID string, result models.GenerationResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to encode result")
		return
	}

	err = c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.resultStream,
		Values: map[string]any{"payload": string(payload)},
	}).Err()
	if err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to publish result")
		return
	}

	c.logger.Info().
		Str("id", msgID).
		Str("request_id", result.RequestID).
		Str("chain", result.Chain).
		Msg("Result published")
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}
