package cache

import (
	"testing"

	"brewscout/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationsKey(t *testing.T) {
	assert.Equal(t, "shops:helsinki:locations", locationsKey("Helsinki"))
	assert.Equal(t, "shops:tel aviv:locations", locationsKey("Tel Aviv"))
}

func TestEncodeDecodeMember(t *testing.T) {
	shop := &entity.CoffeeShop{
		Name:      "Qualia",
		Latitude:  60.1621,
		Longitude: 24.9212,
		WebURL:    "https://example.com/qualia",
	}

	member := encodeMember(shop)
	assert.Equal(t, "Qualia:60.1621:24.9212:https://example.com/qualia", member)

	decoded, err := decodeMember(member)
	require.NoError(t, err)
	assert.Equal(t, shop.Name, decoded.Name)
	assert.Equal(t, shop.Latitude, decoded.Latitude)
	assert.Equal(t, shop.Longitude, decoded.Longitude)
	// The URL keeps its own colons intact.
	assert.Equal(t, shop.WebURL, decoded.WebURL)
	assert.Nil(t, decoded.Distance)
}

func TestDecodeMemberMalformed(t *testing.T) {
	_, err := decodeMember("garbage")
	assert.Error(t, err)

	_, err = decodeMember("name:not-a-float:24.9:https://x")
	assert.Error(t, err)
}

func TestParseGeoSearchEntry(t *testing.T) {
	entry := []any{
		[]byte("Qualia:60.1621:24.9212:https://example.com/qualia"),
		[]byte("512.3"),
		[]any{[]byte("24.92120000"), []byte("60.16210000")},
	}

	shop, err := parseGeoSearchEntry(entry)
	require.NoError(t, err)
	require.NotNil(t, shop.Distance)
	assert.InDelta(t, 0.5123, *shop.Distance, 1e-9)
	assert.Equal(t, "Qualia", shop.Name)
	assert.InDelta(t, 24.9212, shop.Longitude, 1e-6)
	assert.InDelta(t, 60.1621, shop.Latitude, 1e-6)
}
