package list_facilities

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-AmenityService/internal/service/facilities/models"
)

// parseQuery разбирает фильтры списка помещений
// Query params: category, reservable (true|false), minCapacity, amenity, name
func parseQuery(q url.Values) (*models.ListFacilitiesRequest, error) {
	req := &models.ListFacilitiesRequest{}

	if v := q.Get("category"); v != "" {
		req.Category = &v
	}
	if v := q.Get("amenity"); v != "" {
		req.Amenity = &v
	}
	if v := q.Get("name"); v != "" {
		req.NameContains = &v
	}
	if v := q.Get("reservable"); v != "" {
		reservable, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("reservable: %w", err)
		}
		req.IsReservable = &reservable
	}
	if v := q.Get("minCapacity"); v != "" {
		minCapacity, err := strconv.Atoi(v)
		if err != nil || minCapacity < 0 {
			return nil, fmt.Errorf("minCapacity must be a non-negative integer, got %q", v)
		}
		req.MinCapacity = &minCapacity
	}

	return req, nil
}
