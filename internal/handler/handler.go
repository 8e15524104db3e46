package handler

import (
	"github.com/go-telegram/bot"

	"github.com/set-night/o2ledger/internal/config"
	"github.com/set-night/o2ledger/internal/service"
	"github.com/set-night/o2ledger/internal/telegram"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot         *bot.Bot
	cfg         *config.Config
	employees   *service.EmployeeService
	projects    *service.ProjectService
	activities  *service.ActivityService
	leaderboard *service.LeaderboardService
	tgLogger    *telegram.TelegramLogger
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot         *bot.Bot
	Cfg         *config.Config
	Employees   *service.EmployeeService
	Projects    *service.ProjectService
	Activities  *service.ActivityService
	Leaderboard *service.LeaderboardService
	TgLogger    *telegram.TelegramLogger
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:         deps.Bot,
		cfg:         deps.Cfg,
		employees:   deps.Employees,
		projects:    deps.Projects,
		activities:  deps.Activities,
		leaderboard: deps.Leaderboard,
		tgLogger:    deps.TgLogger,
	}
}
