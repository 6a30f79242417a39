package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey(t *testing.T) {
	existing := map[string]any{
		"telegram": map[string]any{
			"apiUrl":         "https://api.telegram.org",
			"requestTimeout": "35s",
		},
		"cache": map[string]any{
			"shopsTtl":           "24h",
			"searchRadiusMeters": 1000,
		},
	}

	tests := []struct {
		name   string
		rawKey string
		want   string
	}{
		{
			name:   "aligns casing with existing yaml keys",
			rawKey: "TELEGRAM_APIURL",
			want:   "telegram.apiUrl",
		},
		{
			name:   "nested duration key",
			rawKey: "TELEGRAM_REQUESTTIMEOUT",
			want:   "telegram.requestTimeout",
		},
		{
			name:   "camel case segment",
			rawKey: "CACHE_SHOPSTTL",
			want:   "cache.shopsTtl",
		},
		{
			name:   "unknown key falls back to lowercase path",
			rawKey: "PUBSUB_PROJECTID",
			want:   "pubsub.projectid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.rawKey, existing))
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, 2, cfg.Cache.ResponseQuantity)
	assert.Equal(t, float64(1000), cfg.Cache.SearchRadiusMeters)
	assert.Positive(t, cfg.Cache.ShopsTTL)
}
