package notifier

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Channel подмножество amqp.Channel, используемое публикатором
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Notification сообщение, которое уходит в очередь доставки уведомлений
type Notification struct {
	ID          string    `json:"id"`
	RequesterID int64     `json:"requester_id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Channels    []string  `json:"channels"`
	CreatedAt   time.Time `json:"created_at"`
}
