package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/flexprice/paystack-gateway/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedSettings struct {
	SecretKey string `json:"secret_key"`
	Enabled   bool   `json:"enabled"`
}

func TestGenerateKey(t *testing.T) {
	assert.Equal(t, "settings:v1::7", GenerateKey(PrefixSettings, 7))
	assert.Equal(t, "settings:v1::7:a", GenerateKey(PrefixSettings, int64(7), "a"))
}

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(config.GetDefaultConfig())

	c.Set(ctx, GenerateKey(PrefixSettings, 1), "one", time.Minute)
	c.Set(ctx, GenerateKey(PrefixSettings, 2), "two", time.Minute)
	c.Set(ctx, "other", "three", time.Minute)

	v, ok := c.Get(ctx, GenerateKey(PrefixSettings, 1))
	require.True(t, ok)
	assert.Equal(t, "one", v)

	c.DeleteByPrefix(ctx, PrefixSettings)
	_, ok = c.Get(ctx, GenerateKey(PrefixSettings, 2))
	assert.False(t, ok)
	_, ok = c.Get(ctx, "other")
	assert.True(t, ok)

	c.Delete(ctx, "other")
	_, ok = c.Get(ctx, "other")
	assert.False(t, ok)
}

func TestInMemoryCacheDisabled(t *testing.T) {
	ctx := context.Background()
	cfg := config.GetDefaultConfig()
	cfg.Cache.Enabled = false
	c := NewInMemoryCache(cfg)

	c.Set(ctx, "k", "v", time.Minute)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestDecode(t *testing.T) {
	want := cachedSettings{SecretKey: "sk_test", Enabled: true}
	raw, err := json.Marshal(want)
	require.NoError(t, err)

	tests := []struct {
		name  string
		value interface{}
		ok    bool
	}{
		{"value", want, true},
		{"pointer", &want, true},
		{"json bytes", raw, true},
		{"nil pointer", (*cachedSettings)(nil), false},
		{"bad json", []byte("{"), false},
		{"other type", 42, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got cachedSettings
			ok := Decode(tt.value, &got)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, want, got)
			}
		})
	}
}
