package googlecalendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
)

// Client клиент Google Calendar API
type Client struct {
	svc     *calendar.Service
	timeout time.Duration
	log     Logger
}

// NewClient создает клиент, авторизованный ключом сервисного аккаунта
// Пустой endpoint - публичный API Google
func NewClient(ctx context.Context, credentialsFile, endpoint string, timeout time.Duration, log Logger) (*Client, error) {
	opts := []option.ClientOption{
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(calendar.CalendarEventsScope),
	}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: create calendar service: %v", ErrInternal, err)
	}
	return NewClientFromService(svc, timeout, log), nil
}

// NewClientWithHTTP создает клиент поверх готового http.Client и endpoint (используется в тестах и прокси)
func NewClientWithHTTP(ctx context.Context, httpClient *http.Client, endpoint string, timeout time.Duration, log Logger) (*Client, error) {
	svc, err := calendar.NewService(ctx,
		option.WithHTTPClient(httpClient),
		option.WithEndpoint(endpoint),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: create calendar service: %v", ErrInternal, err)
	}
	return NewClientFromService(svc, timeout, log), nil
}

// NewClientFromService оборачивает уже созданный calendar.Service
func NewClientFromService(svc *calendar.Service, timeout time.Duration, log Logger) *Client {
	return &Client{
		svc:     svc,
		timeout: timeout,
		log:     log,
	}
}

// ListEvents возвращает события календаря, пересекающиеся с окном
// Повторяющиеся события разворачиваются в отдельные экземпляры.
// События на весь день и события, не прошедшие валидацию, пропускаются с предупреждением.
func (c *Client) ListEvents(ctx context.Context, calendarID string, window domain.TimeWindow) ([]domain.ExternalEvent, error) {
	if err := window.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	c.log.Info("ListEvents: calendar=%s window=%s", calendarID, window)

	events := make([]domain.ExternalEvent, 0)
	call := c.svc.Events.List(calendarID).
		TimeMin(window.Start.Format(time.RFC3339)).
		TimeMax(window.End.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")

	err := call.Pages(ctx, func(page *calendar.Events) error {
		for _, item := range page.Items {
			ev, ok, err := toDomainEvent(item)
			if err != nil {
				c.log.Warn("ListEvents: skip event id=%s calendar=%s: %v", item.Id, calendarID, err)
				continue
			}
			if !ok {
				c.log.Info("ListEvents: skip all-day event id=%s calendar=%s", item.Id, calendarID)
				continue
			}
			if err := ev.Validate(true); err != nil {
				c.log.Warn("ListEvents: skip event id=%s calendar=%s: %v", item.Id, calendarID, err)
				continue
			}
			events = append(events, ev)
		}
		return nil
	})
	if err != nil {
		return nil, c.mapError("ListEvents", calendarID, err)
	}

	c.log.Info("ListEvents: fetched %d events from calendar=%s", len(events), calendarID)
	return events, nil
}

// CreateEvent создает событие и возвращает присвоенный календарем id
func (c *Client) CreateEvent(ctx context.Context, calendarID string, ev domain.ExternalEvent) (string, error) {
	if err := ev.Validate(false); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	created, err := c.svc.Events.Insert(calendarID, fromDomainEvent(ev)).Context(ctx).Do()
	if err != nil {
		return "", c.mapError("CreateEvent", calendarID, err)
	}
	if created.Id == "" {
		return "", fmt.Errorf("%w: CreateEvent - empty event id in response", ErrUnavailable)
	}

	c.log.Info("CreateEvent: created event id=%s in calendar=%s", created.Id, calendarID)
	return created.Id, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) mapError(op, calendarID string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		c.log.Warn("%s: calendar=%s not found", op, calendarID)
		return fmt.Errorf("%w: calendar=%s", ErrCalendarNotFound, calendarID)
	}

	c.log.Error("%s: calendar=%s request failed: %v", op, calendarID, err)
	return fmt.Errorf("%w: %s - calendar=%s: %v", ErrUnavailable, op, calendarID, err)
}
