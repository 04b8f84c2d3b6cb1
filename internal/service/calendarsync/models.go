package calendarsync

import "github.com/m04kA/SMC-AmenityService/internal/domain"

// Direction направление синхронизации
type Direction string

const (
	DirectionExport Direction = "export"
	DirectionImport Direction = "import"
	DirectionBoth   Direction = "both"
)

// IsValid returns true for known directions
func (d Direction) IsValid() bool {
	switch d {
	case DirectionExport, DirectionImport, DirectionBoth:
		return true
	}
	return false
}

// Request параметры синхронизации
type Request struct {
	RequesterID int64
	CalendarID  string
	Window      domain.TimeWindow
}

// Причины пропуска событий при импорте
const (
	SkipUnmappedLocation = "unmapped_location"
	SkipAlreadyLinked    = "already_linked"
	SkipConflict         = "conflict"
	SkipUnknownFacility  = "unknown_facility"
	SkipNotReservable    = "not_reservable"
	SkipInvalid          = "invalid"
)

// ExportedReservation бронирование, для которого создано событие
type ExportedReservation struct {
	ReservationID   int64
	ExternalEventID string
}

// ExportResult результат экспорта
type ExportResult struct {
	Created []ExportedReservation
	Skipped []int64 // уже связаны с календарем
}

// CreatedEventIDs id созданных событий в порядке создания
func (r *ExportResult) CreatedEventIDs() []string {
	ids := make([]string, 0, len(r.Created))
	for _, c := range r.Created {
		ids = append(ids, c.ExternalEventID)
	}
	return ids
}

// SkippedEvent событие, по которому бронирование не создано
type SkippedEvent struct {
	ExternalEventID string
	Reason          string
}

// ImportResult результат импорта
type ImportResult struct {
	Imported []*domain.Reservation
	Skipped  []SkippedEvent
}

// SyncResult результат синхронизации, nil для невыполненного направления
type SyncResult struct {
	Export *ExportResult
	Import *ImportResult
}
