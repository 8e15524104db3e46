package handler

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/set-night/o2ledger/internal/domain"
	tg "github.com/set-night/o2ledger/internal/telegram"
)

var badgeIcons = map[domain.Badge]string{
	domain.BadgeGold:   "🥇",
	domain.BadgeSilver: "🥈",
	domain.BadgeBronze: "🥉",
}

// projectItem is a joined project with the caller's completion state.
type projectItem struct {
	Project domain.Project
	State   domain.ParticipationState
}

// parseID extracts the numeric id following prefix in callback data or a
// command argument.
func parseID(data, prefix string) (int64, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(data, prefix))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// parsePage reads the page number from pagination callback data. Anything
// unparseable is page 1.
func parsePage(data, prefix string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(data, prefix+"_"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func formatProfile(p domain.Profile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "👤 *%s*\n\n", tg.EscapeMarkdown(p.Employee.Name))
	fmt.Fprintf(&sb, "⭐ XP: *%d*\n", p.Employee.Points)
	fmt.Fprintf(&sb, "🌿 O2: *%s*\n", p.Employee.Currency.StringFixed(2))
	fmt.Fprintf(&sb, "%s Badge: *%s*\n", badgeIcons[p.Badge], p.Badge)
	if p.Rank > 0 {
		fmt.Fprintf(&sb, "🏆 Rank: *%d* of %d", p.Rank, p.Employees)
	}
	return sb.String()
}

func formatLeaderboard(standings []domain.Standing, selfID int64) string {
	if len(standings) == 0 {
		return "🏆 *Leaderboard*\n\nNo employees yet."
	}

	var sb strings.Builder
	sb.WriteString("🏆 *Leaderboard*\n\n")
	for _, s := range standings {
		marker := ""
		if s.EmployeeID == selfID {
			marker = " ← you"
		}
		fmt.Fprintf(&sb, "%d. %s %s: %s O2%s\n",
			s.Rank, badgeIcons[s.Badge], tg.EscapeMarkdown(s.Name), s.Currency.StringFixed(2), marker)
	}
	return sb.String()
}

func formatProjects(items []projectItem, total int64) string {
	if total == 0 {
		return "📋 *My projects*\n\nYou have not joined any project yet. Use /join <id> to join one."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 *My projects* (%d)\n\n", total)
	for _, it := range items {
		status := "⏳ in progress"
		if it.State == domain.StateCompleted {
			status = "✅ completed"
		}
		fmt.Fprintf(&sb, "*%s* (#%d)\n%d XP · %s", tg.EscapeMarkdown(it.Project.Name), it.Project.ID, it.Project.RewardPoints, status)
		if it.Project.DateEnd != nil {
			fmt.Fprintf(&sb, " · until %s", it.Project.DateEnd.Format("2006-01-02"))
		}
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func formatProjectCard(p domain.Project) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📌 *%s* (#%d)\n\n", tg.EscapeMarkdown(p.Name), p.ID)
	if desc := tg.PlainText(p.Description); desc != "" {
		sb.WriteString(tg.EscapeMarkdown(desc) + "\n\n")
	}
	fmt.Fprintf(&sb, "Reward: *%d XP*", p.RewardPoints)
	if p.DateStart != nil {
		fmt.Fprintf(&sb, "\nStarts: %s", p.DateStart.Format("2006-01-02"))
	}
	if p.DateEnd != nil {
		fmt.Fprintf(&sb, "\nEnds: %s", p.DateEnd.Format("2006-01-02"))
	}
	return sb.String()
}

func formatActivities(activities []domain.Activity, total int64, balance int64) string {
	if total == 0 {
		return "🛒 *Activities*\n\nNothing available right now."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🛒 *Activities* (%d)\nYour balance: *%d XP*\n\n", total, balance)
	for _, a := range activities {
		fmt.Fprintf(&sb, "*%s* (#%d)\n%d XP → %s O2\n\n",
			tg.EscapeMarkdown(a.Name), a.ID, a.PointsCost, a.CurrencyPayout.StringFixed(2))
	}
	return sb.String()
}

func formatJoin(res domain.JoinResult, projectName string) string {
	if res.Status == domain.JoinAlreadyMember {
		return fmt.Sprintf("ℹ️ You already joined *%s*.", tg.EscapeMarkdown(projectName))
	}
	return fmt.Sprintf("🤝 You joined *%s*. Use /projects to mark it done when finished.", tg.EscapeMarkdown(projectName))
}

// completionNotice is the short callback answer for a mark-done press.
func completionNotice(res domain.CompletionResult) string {
	switch res.Status {
	case domain.CompletionAwarded:
		return fmt.Sprintf("✅ Done! +%d XP (balance %d XP)", res.PointsAwarded, res.PointsBalance)
	case domain.CompletionNoReward:
		return "✅ Done!"
	default:
		return "Already completed"
	}
}

func formatPurchase(res domain.PurchaseResult, activityName string) string {
	return fmt.Sprintf("🎉 *%s* purchased!\n\n-%d XP, +%s O2\nBalance: %d XP · %s O2\nReceipt: `%s`",
		tg.EscapeMarkdown(activityName),
		res.Purchase.PointsPaid, res.Purchase.CurrencyReceived.StringFixed(2),
		res.PointsBalance, res.CurrencyBalance.StringFixed(2),
		res.Purchase.Receipt)
}

// userMessage turns a service error into a message for the chat user. The
// second result is false for errors that are not the user's doing and should
// be reported.
func userMessage(err error) (string, bool) {
	var insufficient *domain.InsufficientBalanceError
	switch {
	case errors.As(err, &insufficient):
		return fmt.Sprintf("❌ Not enough XP: need %d, you have %d.", insufficient.Required, insufficient.Available), true
	case errors.Is(err, domain.ErrProjectNotFound):
		return "❌ Project not found.", true
	case errors.Is(err, domain.ErrActivityNotFound):
		return "❌ Activity not found.", true
	case errors.Is(err, domain.ErrActivityUnavailable):
		return "❌ This activity is no longer available.", true
	case errors.Is(err, domain.ErrNotAParticipant):
		return "❌ Join the project first.", true
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return notLinkedText, true
	default:
		return "⚠️ Something went wrong. Please try again later.", false
	}
}

const notLinkedText = "🔒 Your Telegram account is not linked to an employee yet. Send /start to get your Telegram id and pass it to your administrator."

// sortByState lists pending projects before completed ones, keeping the
// listing order otherwise.
func sortByState(items []projectItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].State != domain.StateCompleted && items[j].State == domain.StateCompleted
	})
}
