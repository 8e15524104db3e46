package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/o2ledger/internal/config"
	"github.com/set-night/o2ledger/internal/domain"
)

type fakeSender struct {
	sent []bot.SendMessageParams
	// markdown sends fail when set, like Telegram rejecting bad entities
	rejectMarkdown bool
}

func (f *fakeSender) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	if f.rejectMarkdown && params.ParseMode != "" {
		return nil, errors.New("Bad Request: can't parse entities")
	}
	f.sent = append(f.sent, *params)
	return &models.Message{}, nil
}

func TestLoggerRoutesTopics(t *testing.T) {
	sender := &fakeSender{}
	cfg := &config.Config{LogTelegramChatID: -100, LogTopicCompletion: 7, LogTopicPurchase: 8}
	l := NewTelegramLogger(sender, cfg)

	l.ProjectCompleted(context.Background(),
		domain.Employee{ID: 1, Name: "Ana_B"},
		domain.Project{ID: 2, Name: "Beach"},
		domain.CompletionResult{Status: domain.CompletionAwarded, PointsAwarded: 30, PointsBalance: 30},
	)
	l.ActivityPurchased(context.Background(),
		domain.Employee{ID: 1, Name: "Ana"},
		domain.Activity{ID: 3, Name: "Trees"},
		domain.PurchaseResult{Purchase: domain.Purchase{Receipt: uuid.New(), PointsPaid: 30, CurrencyReceived: decimal.NewFromInt(5)}},
	)
	// error topic is not configured
	l.LogError(errors.New("boom"), "GET /api/me")

	require.Len(t, sender.sent, 2)
	assert.Equal(t, 7, sender.sent[0].MessageThreadID)
	assert.Contains(t, sender.sent[0].Text, `Ana\_B`)
	assert.Equal(t, 8, sender.sent[1].MessageThreadID)
	assert.Contains(t, sender.sent[1].Text, "5.00 O2")
}

func TestLoggerDisabledWithoutChat(t *testing.T) {
	sender := &fakeSender{}
	l := NewTelegramLogger(sender, &config.Config{LogTopicError: 1})
	l.LogError(errors.New("boom"), "ctx")
	assert.Empty(t, sender.sent)

	var nilLogger *TelegramLogger
	nilLogger.LogError(errors.New("boom"), "ctx")
}

func TestSplitMessage(t *testing.T) {
	assert.Equal(t, []string{"short"}, SplitMessage("short", 10))

	text := strings.Repeat("a", 8) + "\n" + strings.Repeat("b", 8)
	parts := SplitMessage(text, 10)
	require.Len(t, parts, 2)
	assert.Equal(t, strings.Repeat("a", 8)+"\n", parts[0])
	assert.Equal(t, strings.Repeat("b", 8), parts[1])
}

func TestFixMarkdown(t *testing.T) {
	assert.Equal(t, "`code`", FixMarkdown("`code"))
	assert.Equal(t, "```\nx\n```", FixMarkdown("```\nx"))
	assert.Equal(t, "a \\` b", FixMarkdown(EscapeMarkdown("a ` b")))
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `\*bold\* \_x\_ \[link]`, EscapeMarkdown("*bold* _x_ [link]"))
}

func TestPaginationRow(t *testing.T) {
	assert.Nil(t, PaginationRow(1, 1, "pp"))

	row := PaginationRow(2, 3, "pp")
	require.Len(t, row, 3)
	assert.Equal(t, "pp_1", row[0].CallbackData)
	assert.Equal(t, "2/3", row[1].Text)
	assert.Equal(t, "pp_3", row[2].CallbackData)

	row = PaginationRow(1, 2, "pp")
	require.Len(t, row, 2)
	assert.Equal(t, "cur", row[0].CallbackData)

	assert.Equal(t, 1, TotalPages(0, 5))
	assert.Equal(t, 2, TotalPages(6, 5))
	assert.Equal(t, 2, TotalPages(10, 5))
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Clean the beach", PlainText("  Clean the beach \n"))
	assert.Equal(t, "Bring gloves\nMeet at 9 & be on time",
		PlainText("<p>Bring <b>gloves</b></p><p>Meet at 9 &amp; be on time</p>"))
	assert.Equal(t, "one\ntwo", PlainText("one<br>two<script>alert(1)</script>"))
}

func TestLogErrorEscapesMessage(t *testing.T) {
	sender := &fakeSender{}
	l := NewTelegramLogger(sender, &config.Config{LogTelegramChatID: -100, LogTopicError: 3})

	l.LogError(errors.New("bad `name` in some_field"), "POST /api/projects")

	require.Len(t, sender.sent, 1)
	assert.Equal(t, models.ParseModeMarkdownV1, sender.sent[0].ParseMode)
	assert.Contains(t, sender.sent[0].Text, "*Error:* bad \\`name\\` in some\\_field\n")
	assert.Equal(t, 3, sender.sent[0].MessageThreadID)
}

func TestLogFallsBackToPlainText(t *testing.T) {
	sender := &fakeSender{rejectMarkdown: true}
	l := NewTelegramLogger(sender, &config.Config{LogTelegramChatID: -100, LogTopicError: 3})

	l.LogError(errors.New("boom"), "ctx")

	require.Len(t, sender.sent, 1)
	assert.Empty(t, sender.sent[0].ParseMode)
	assert.Contains(t, sender.sent[0].Text, "boom")
}
