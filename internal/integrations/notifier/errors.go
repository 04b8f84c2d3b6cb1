package notifier

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к RabbitMQ
	ErrConnect = errors.New("notifier: failed to connect to broker")

	// ErrPublish возвращается, когда сообщение не было опубликовано
	ErrPublish = errors.New("notifier: failed to publish notification")

	// ErrInvalidNotification возвращается при некорректном уведомлении
	ErrInvalidNotification = errors.New("notifier: invalid notification")
)
