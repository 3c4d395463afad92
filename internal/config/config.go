package config // configuration loaded from environment variables

import (
    "log"
    "os"
    "strconv"
)

// Config carries the core runtime settings.  Every field maps to one
// environment variable; required ones abort startup when missing so a
// misconfigured deployment fails loudly instead of limping along.
type Config struct {
    Env            string // deployment environment ("dev", "test", "prod")
    Port           string // HTTP listen port
    DBUser         string // MySQL username
    DBPass         string // MySQL password, may be empty for local dev
    DBHost         string // MySQL host
    DBPort         string // MySQL port
    DBName         string // MySQL schema name
    JWTSecret      string // HMAC secret for signing access and refresh tokens
    AccessTTLMin   int    // access token lifetime in minutes
    RefreshTTLDays int    // refresh token lifetime in days
    BcryptCost     int    // bcrypt work factor for password hashing
}

// Load builds a Config from the process environment.
func Load() Config {
    return Config{
        Env:            must("APP_ENV"),
        Port:           must("APP_PORT"),
        DBUser:         must("DB_USER"),
        DBPass:         os.Getenv("DB_PASS"),
        DBHost:         must("DB_HOST"),
        DBPort:         must("DB_PORT"),
        DBName:         must("DB_NAME"),
        JWTSecret:      must("JWT_SECRET"),
        AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
        RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
        BcryptCost:     mustInt("BCRYPT_COST"),
    }
}

// must fetches a required environment variable or exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt fetches a required integer environment variable or exits.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}
