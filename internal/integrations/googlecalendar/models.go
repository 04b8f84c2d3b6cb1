package googlecalendar

import (
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// toDomainEvent преобразует событие Google Calendar
// Возвращает false для событий на весь день: у них нет точного интервала
func toDomainEvent(ev *calendar.Event) (domain.ExternalEvent, bool, error) {
	if ev.Start == nil || ev.End == nil || ev.Start.DateTime == "" || ev.End.DateTime == "" {
		return domain.ExternalEvent{}, false, nil
	}

	start, err := time.Parse(time.RFC3339, ev.Start.DateTime)
	if err != nil {
		return domain.ExternalEvent{}, false, fmt.Errorf("parse start %q: %w", ev.Start.DateTime, err)
	}
	end, err := time.Parse(time.RFC3339, ev.End.DateTime)
	if err != nil {
		return domain.ExternalEvent{}, false, fmt.Errorf("parse end %q: %w", ev.End.DateTime, err)
	}

	out := domain.ExternalEvent{
		ID:    ev.Id,
		Title: ev.Summary,
		Start: start,
		End:   end,
	}
	if ev.Description != "" {
		desc := ev.Description
		out.Description = &desc
	}
	if ev.Location != "" {
		loc := ev.Location
		out.Location = &loc
	}

	return out, true, nil
}

func fromDomainEvent(ev domain.ExternalEvent) *calendar.Event {
	return &calendar.Event{
		Summary:     ev.Title,
		Description: ev.DescriptionOrEmpty(),
		Location:    ev.LocationOrEmpty(),
		Start:       &calendar.EventDateTime{DateTime: ev.Start.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: ev.End.Format(time.RFC3339)},
	}
}
