// Package notifier публикует уведомления пользователям в RabbitMQ
// Доставку по каналам (email, push, sms) выполняет отдельный сервис-подписчик
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher отправляет уведомления в topic exchange
type Publisher struct {
	conn       *amqp.Connection
	ch         Channel
	exchange   string
	routingKey string
	log        Logger
}

// NewPublisher подключается к брокеру и объявляет exchange
func NewPublisher(url, exchange, routingKey string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	p := NewPublisherWithChannel(ch, exchange, routingKey, log)
	p.conn = conn
	return p, nil
}

// NewPublisherWithChannel создает публикатор поверх готового канала
func NewPublisherWithChannel(ch Channel, exchange, routingKey string, log Logger) *Publisher {
	return &Publisher{
		ch:         ch,
		exchange:   exchange,
		routingKey: routingKey,
		log:        log,
	}
}

// Send публикует уведомление пользователю
// Возвращает true, если брокер принял сообщение
func (p *Publisher) Send(ctx context.Context, requesterID int64, title, message string, channels []string) (bool, error) {
	if requesterID <= 0 || strings.TrimSpace(title) == "" {
		return false, fmt.Errorf("%w: requester=%d title=%q", ErrInvalidNotification, requesterID, title)
	}
	if channels == nil {
		channels = []string{}
	}

	n := Notification{
		ID:          uuid.NewString(),
		RequesterID: requesterID,
		Title:       title,
		Message:     message,
		Channels:    channels,
		CreatedAt:   time.Now().UTC(),
	}

	body, err := json.Marshal(n)
	if err != nil {
		return false, fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    n.ID,
		Timestamp:    n.CreatedAt,
		Body:         body,
	})
	if err != nil {
		p.log.Error("Send: publish failed for requester=%d: %v", requesterID, err)
		return false, fmt.Errorf("%w: %v", ErrPublish, err)
	}

	p.log.Info("Send: notification id=%s published for requester=%d", n.ID, requesterID)
	return true, nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// LogSender пишет уведомления в лог, когда брокер не настроен
type LogSender struct {
	log Logger
}

// NewLogSender создает отправителя, который только логирует
func NewLogSender(log Logger) *LogSender {
	return &LogSender{log: log}
}

// Send записывает уведомление в лог
func (s *LogSender) Send(_ context.Context, requesterID int64, title, message string, channels []string) (bool, error) {
	s.log.Info("Send: notification for requester=%d title=%q channels=%v: %s", requesterID, title, channels, message)
	return true, nil
}
