package facility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
	"github.com/m04kA/SMC-AmenityService/pkg/ptr"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"pool", `%pool%`},
		{"50%", `%50\%%`},
		{"room_1", `%room\_1%`},
		{`a\b`, `%a\\b%`},
		{"", `%%`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, containsPattern(tt.in))
		})
	}
}

func TestFilterSelect(t *testing.T) {
	query, args, err := filterSelect(domain.FacilityFilter{
		Category:     ptr.Ptr("sport"),
		IsReservable: ptr.Ptr(true),
		MinCapacity:  ptr.Ptr(10),
		Amenity:      ptr.Ptr("sauna"),
		NameContains: ptr.Ptr("100%_gym"),
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "category = $1")
	assert.Contains(t, query, "is_reservable = $2")
	assert.Contains(t, query, "capacity >= $3")
	assert.Contains(t, query, "$4::text = ANY(amenities)")
	assert.Contains(t, query, "name ILIKE $5")
	assert.Contains(t, query, "ORDER BY name ASC, id ASC")
	assert.Equal(t, []interface{}{"sport", true, 10, "sauna", `%100\%\_gym%`}, args)
}

func TestFilterSelect_Empty(t *testing.T) {
	query, args, err := filterSelect(domain.FacilityFilter{}).ToSql()
	require.NoError(t, err)

	assert.NotContains(t, query, "WHERE")
	assert.Empty(t, args)
}
