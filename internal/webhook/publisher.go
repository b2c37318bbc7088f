package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	webhookQueueKey = "webhook_events"
)

// EventType - тип события жизненного цикла запроса помощи
type EventType string

const (
	EventHelpRequested EventType = "help.requested"
	EventHelpCancelled EventType = "help.cancelled"
	EventOfferCreated  EventType = "offer.created"
	EventOfferAccepted EventType = "offer.accepted"
	EventOfferRejected EventType = "offer.rejected"
)

// WebhookEvent - структура для данных вебхука
type WebhookEvent struct {
	Type EventType `json:"type"`
	// UserID - запросивший помощь
	UserID string `json:"user_id"`
	// CounterpartID - помощник, если событие касается предложения
	CounterpartID string    `json:"counterpart_id,omitempty"`
	OfferID       string    `json:"offer_id,omitempty"`
	Status        string    `json:"status,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// WebhookPublisher - интерфейс для публикации вебхуков
type WebhookPublisher interface {
	Publish(ctx context.Context, event WebhookEvent) error
}

// RedisWebhookPublisher - реализация WebhookPublisher, использующая Redis
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

// NewRedisWebhookPublisher создает новый RedisWebhookPublisher
func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish публикует событие вебхука в очередь Redis
func (p *RedisWebhookPublisher) Publish(ctx context.Context, event WebhookEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	// LPUSH добавляет событие в голову очереди, воркер забирает с хвоста
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}

// NopWebhookPublisher отбрасывает события. Используется, когда Redis не настроен.
type NopWebhookPublisher struct{}

func (NopWebhookPublisher) Publish(context.Context, WebhookEvent) error { return nil }
