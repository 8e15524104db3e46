package config

import "time"

const (
	// Leaderboard entries shown by /top
	LeaderboardTopN = 10

	// Items per bot list page
	BotPageSize = 5

	// Messages a chat may send per minute
	BotRateLimitPerMinute = 20

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// HTTP server timeouts
	HTTPReadHeaderTimeout = 5 * time.Second
	HTTPReadTimeout       = 15 * time.Second
	HTTPWriteTimeout      = 30 * time.Second
	HTTPIdleTimeout       = 60 * time.Second
	ShutdownTimeout       = 10 * time.Second

	// Portal tokens
	TokenLifetime = 24 * time.Hour
	TokenLeeway   = 30 * time.Second
	TokenIssuer   = "o2ledger"
)
