package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/o2ledger/internal/config"
	"github.com/set-night/o2ledger/internal/domain"
	"github.com/set-night/o2ledger/internal/portal"
	"github.com/set-night/o2ledger/internal/repository/memory"
	"github.com/set-night/o2ledger/internal/service"
)

func TestRootRejectsInvalidFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "xml", "migrate"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestTokenCommand(t *testing.T) {
	buf := &bytes.Buffer{}
	opts := &RootOptions{Format: "text", Config: &config.Config{JWTSecret: "secret"}}
	cmd := NewTokenCommand(opts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--user", "42"})

	require.NoError(t, cmd.Execute())

	auth := portal.NewAuthenticator([]byte("secret"), nil)
	userID, err := auth.UserID(strings.TrimSpace(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenCommandRequiresUser(t *testing.T) {
	opts := &RootOptions{Format: "text", Config: &config.Config{JWTSecret: "secret"}}
	cmd := NewTokenCommand(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(nil)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestWriteStandings(t *testing.T) {
	standings := []domain.Standing{
		{Rank: 1, EmployeeID: 2, Name: "Bo", Currency: decimal.NewFromInt(100), Badge: domain.BadgeGold},
		{Rank: 2, EmployeeID: 1, Name: "Ana", Currency: decimal.RequireFromString("7.5"), Badge: domain.BadgeBronze},
	}

	var text bytes.Buffer
	require.NoError(t, writeStandings(&text, "text", standings))
	lines := strings.Split(strings.TrimSpace(text.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "RANK"))
	assert.Contains(t, lines[2], "7.50")
	assert.Contains(t, lines[2], "bronze")

	var out bytes.Buffer
	require.NoError(t, writeStandings(&out, "json", standings))
	var decoded []standingJSON
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "100.00", decoded[0].O2)
	assert.Equal(t, "gold", decoded[0].Badge)
}

func TestLinkTelegram(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	ana := store.AddEmployee(1, "Ana", 0, decimal.Zero)
	bo := store.AddEmployee(2, "Bo", 0, decimal.Zero)

	var out bytes.Buffer
	require.NoError(t, linkTelegram(ctx, &out, store, ana.ID, 777))
	assert.Contains(t, out.String(), "(Ana) to telegram user 777")

	err := linkTelegram(ctx, &out, store, bo.ID, 777)
	assert.ErrorIs(t, err, service.ErrTelegramLinked)

	err = linkTelegram(ctx, &out, store, 9999, 778)
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}
