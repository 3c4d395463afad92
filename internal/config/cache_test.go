package config

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func TestParseMethods(t *testing.T) {
    m := parseMethods("get, head ,POST")
    assert.True(t, m["GET"])
    assert.True(t, m["HEAD"])
    assert.True(t, m["POST"])
    assert.False(t, m["DELETE"])

    assert.Empty(t, parseMethods(""))
}

func TestEnvHelpers(t *testing.T) {
    t.Setenv("X_STR", "hello")
    t.Setenv("X_BOOL", "off")
    t.Setenv("X_INT", "42")
    t.Setenv("X_DUR", "90s")

    assert.Equal(t, "hello", envStr("X_STR", "d"))
    assert.Equal(t, "d", envStr("X_MISSING", "d"))

    assert.False(t, envBool("X_BOOL", true))
    assert.True(t, envBool("X_MISSING", true))

    assert.Equal(t, 42, envInt("X_INT", 0))
    assert.Equal(t, 7, envInt("X_MISSING", 7))

    assert.Equal(t, 90*time.Second, envDur("X_DUR", time.Second))
    assert.Equal(t, time.Minute, envDur("X_MISSING", time.Minute))
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
    t.Setenv("RATE_LIMIT_CAPACITY", "0")
    t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
    t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
    t.Setenv("RATE_LIMIT_TTL", "1s")

    cfg := LoadRateLimitConfig()
    assert.Equal(t, 1, cfg.Capacity)
    assert.Equal(t, 1, cfg.RefillTokens)
    assert.Equal(t, 2*time.Second, cfg.RefillInterval)
    assert.Equal(t, 10*time.Second, cfg.TTL, "TTL is raised to cover several refills")
}
