package config

import "time"

type ctxKey string

const (
	UidKey    ctxKey = "uid"
	DeviceKey ctxKey = "device"
)

const (
	DefaultCacheTime = time.Hour
	MaxMemory        = 10 << 20 // 10 MB
	ErrorSpanTag     = "error"
)

const (
	AccessTokenDuration  = time.Minute * 15
	RefreshTokenDuration = time.Hour * 24 * 14
	ChallengeDuration    = time.Minute * 5
	ResetTokenDuration   = time.Minute * 10
)
