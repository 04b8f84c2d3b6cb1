package reservations

import (
	"fmt"
	"math"
	"time"
)

// BillingPolicy способ округления оплачиваемых часов
type BillingPolicy string

const (
	// RoundFloor оплачиваются только полные часы: 90 минут = 1 час
	RoundFloor BillingPolicy = "floor"
	// RoundCeil оплачивается каждый начатый час: 90 минут = 2 часа
	RoundCeil BillingPolicy = "ceil"
)

// ParseBillingPolicy разбирает значение из конфигурации, пустая строка означает RoundFloor
func ParseBillingPolicy(s string) (BillingPolicy, error) {
	switch BillingPolicy(s) {
	case "", RoundFloor:
		return RoundFloor, nil
	case RoundCeil:
		return RoundCeil, nil
	}
	return "", fmt.Errorf("unknown billing policy %q", s)
}

// BillableHours количество оплачиваемых часов в [start, end)
func BillableHours(start, end time.Time, policy BillingPolicy) int64 {
	elapsed := end.Sub(start)
	if elapsed <= 0 {
		return 0
	}

	hours := int64(elapsed / time.Hour)
	if policy == RoundCeil && elapsed%time.Hour != 0 {
		hours++
	}
	return hours
}

// ComputeCost стоимость бронирования, округленная до копеек
// nil, если у помещения нет почасовой ставки
func ComputeCost(hourlyRate *float64, start, end time.Time, policy BillingPolicy) *float64 {
	if hourlyRate == nil {
		return nil
	}

	cost := math.Round(*hourlyRate*float64(BillableHours(start, end, policy))*100) / 100
	return &cost
}
