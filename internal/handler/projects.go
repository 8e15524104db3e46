package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/o2ledger/internal/config"
	"github.com/set-night/o2ledger/internal/domain"
	"github.com/set-night/o2ledger/internal/middleware"
	tg "github.com/set-night/o2ledger/internal/telegram"
)

func (h *Handler) handleProjects(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	employeeID, ok := h.requireEmployee(ctx, b, chatID)
	if !ok {
		return
	}
	h.sendProjectsPage(ctx, b, chatID, employeeID, 1, 0)
}

func (h *Handler) handleProjectsPage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	answer(ctx, b, update, "")

	chatID, messageID, ok := callbackMessage(update)
	if !ok {
		return
	}
	employeeID, ok := h.requireEmployee(ctx, b, chatID)
	if !ok {
		return
	}
	h.sendProjectsPage(ctx, b, chatID, employeeID, parsePage(update.CallbackQuery.Data, projectsPagePrefix), messageID)
}

// sendProjectsPage renders the employee's projects. A non-zero messageID
// edits that message in place.
func (h *Handler) sendProjectsPage(ctx context.Context, b *bot.Bot, chatID, employeeID int64, page, messageID int) {
	p := domain.Page{Number: page, Size: config.BotPageSize}
	projects, total, err := h.projects.ListForEmployee(ctx, employeeID, p)
	if err != nil {
		h.fail(ctx, b, chatID, err, "list projects")
		return
	}

	items := make([]projectItem, 0, len(projects))
	for _, project := range projects {
		state, err := h.projects.State(ctx, project.ID, employeeID)
		if err != nil {
			h.fail(ctx, b, chatID, err, "project state")
			return
		}
		items = append(items, projectItem{Project: project, State: state})
	}
	sortByState(items)

	var rows [][]models.InlineKeyboardButton
	for _, it := range items {
		if it.State == domain.StatePending {
			rows = append(rows, tg.ButtonRow(
				tg.InlineButton("✅ Done: "+it.Project.Name, fmt.Sprintf("done_%d", it.Project.ID)),
			))
		}
	}
	if row := tg.PaginationRow(page, tg.TotalPages(total, config.BotPageSize), projectsPagePrefix); row != nil {
		rows = append(rows, row)
	}

	var keyboard *models.InlineKeyboardMarkup
	if len(rows) > 0 {
		keyboard = tg.InlineKeyboard(rows...)
	}

	text := formatProjects(items, total)
	if messageID != 0 {
		h.edit(ctx, b, chatID, messageID, text, keyboard)
		return
	}
	h.reply(ctx, b, chatID, text, keyboard)
}

// handleJoin shows the project card with a join button.
func (h *Handler) handleJoin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if _, ok := h.requireEmployee(ctx, b, chatID); !ok {
		return
	}

	arg := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/join"))
	if arg == "" {
		h.reply(ctx, b, chatID, "Usage: /join <project id>", nil)
		return
	}
	projectID, err := parseID(arg, "")
	if err != nil {
		h.reply(ctx, b, chatID, "❌ Project id must be a positive number.", nil)
		return
	}

	project, err := h.projects.Get(ctx, projectID)
	if err != nil {
		h.fail(ctx, b, chatID, err, "get project")
		return
	}

	keyboard := tg.InlineKeyboard(tg.ButtonRow(
		tg.InlineButton("🤝 Join", fmt.Sprintf("join_%d", project.ID)),
	))
	h.reply(ctx, b, chatID, formatProjectCard(project), keyboard)
}

func (h *Handler) handleJoinCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	chatID, messageID, ok := callbackMessage(update)
	if !ok {
		answer(ctx, b, update, "")
		return
	}

	emp := middleware.GetEmployee(ctx)
	if emp == nil {
		answer(ctx, b, update, "")
		h.reply(ctx, b, chatID, notLinkedText, nil)
		return
	}

	projectID, err := parseID(update.CallbackQuery.Data, "join_")
	if err != nil {
		answer(ctx, b, update, "")
		return
	}

	project, err := h.projects.Get(ctx, projectID)
	if err != nil {
		answer(ctx, b, update, "")
		h.fail(ctx, b, chatID, err, "get project")
		return
	}

	res, err := h.projects.Join(ctx, projectID, emp.ID)
	if err != nil {
		answer(ctx, b, update, "")
		h.fail(ctx, b, chatID, err, "join project")
		return
	}

	answer(ctx, b, update, "")
	h.edit(ctx, b, chatID, messageID, formatProjectCard(project)+"\n\n"+formatJoin(res, project.Name), nil)
}

// handleDone marks the project done for the caller and refreshes the list.
func (h *Handler) handleDone(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	chatID, messageID, ok := callbackMessage(update)
	if !ok {
		answer(ctx, b, update, "")
		return
	}

	emp := middleware.GetEmployee(ctx)
	if emp == nil {
		answer(ctx, b, update, "")
		h.reply(ctx, b, chatID, notLinkedText, nil)
		return
	}

	projectID, err := parseID(update.CallbackQuery.Data, "done_")
	if err != nil {
		answer(ctx, b, update, "")
		return
	}

	res, err := h.projects.MarkDone(ctx, projectID, emp.ID)
	if err != nil {
		answer(ctx, b, update, "")
		h.fail(ctx, b, chatID, err, "mark done")
		return
	}

	answer(ctx, b, update, completionNotice(res))
	h.sendProjectsPage(ctx, b, chatID, emp.ID, 1, messageID)
}
