// Package assistant answers investment questions about the current portfolio snapshot.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/realty/internal/domain/models"
	"github.com/mamadbah2/realty/internal/engine/scoring"
	"github.com/mamadbah2/realty/pkg/clients/anthropic"
)

const (
	greeting = "Hello! I'm your AI real estate investment assistant. I can help you analyze properties, " +
		"understand market trends, and make better investment decisions. What would you like to know?"

	fallbackReply = "I can rank your listings, explain their AI scores, summarise the market or break down NOI " +
		"and cap rates. Try asking \"show me the top scores\" or \"what market trends should I watch?\"."

	emptyPortfolioReply = "No properties are loaded yet, so there is nothing to analyze. Refresh the portfolio and ask again."

	highlightCount = 3
	contextCount   = 5
)

// Portfolio is the read side of the snapshot the assistant reasons about.
type Portfolio interface {
	Properties(filters models.PropertyFilters) []models.Property
	Analytics(filters models.PropertyFilters) models.MarketAnalytics
}

// Service produces chat replies. With an LLM client it asks the model and falls back to
// the scripted answer on failure.
type Service struct {
	portfolio Portfolio
	llm       anthropic.Client
	sessions  *SessionManager
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

// NewService wires the assistant. llm may be nil.
func NewService(portfolio Portfolio, llm anthropic.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		portfolio: portfolio,
		llm:       llm,
		sessions:  NewSessionManager(),
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (s *Service) message(sender models.Sender, content string) models.ChatMessage {
	return models.ChatMessage{
		ID:        s.newID(),
		Content:   content,
		Sender:    sender,
		Timestamp: s.now().UTC(),
	}
}

// History returns the conversation of a session. A new session starts with the greeting.
func (s *Service) History(sessionID string) []models.ChatMessage {
	s.ensureSession(sessionID)
	history, _ := s.sessions.History(sessionID)
	return history
}

// Clear forgets a session.
func (s *Service) Clear(sessionID string) {
	s.sessions.ClearSession(sessionID)
}

func (s *Service) ensureSession(sessionID string) {
	if _, exists := s.sessions.History(sessionID); !exists {
		s.sessions.Append(sessionID, s.message(models.SenderAssistant, greeting))
	}
}

// Reply records the user message, answers it and records the answer.
func (s *Service) Reply(ctx context.Context, sessionID, text string) (models.ChatReply, error) {
	text = strings.TrimSpace(text)
	if sessionID == "" || text == "" {
		return models.ChatReply{}, fmt.Errorf("session id and message are required")
	}

	s.ensureSession(sessionID)
	s.sessions.Append(sessionID, s.message(models.SenderUser, text))

	intent := models.ParseIntent(text)
	s.logger.Debug("chat intent parsed", zap.String("session", sessionID), zap.String("intent", string(intent.Type)))

	answer := s.scripted(intent)
	if s.llm != nil {
		history, _ := s.sessions.History(sessionID)
		generated, err := s.llm.Complete(ctx, s.systemPrompt(), toTurns(history))
		if err != nil {
			s.logger.Warn("ai reply failed, using scripted answer", zap.Error(err))
		} else {
			answer = generated
		}
	}

	reply := s.message(models.SenderAssistant, answer)
	s.sessions.Append(sessionID, reply)

	return models.ChatReply{SessionID: sessionID, Intent: intent.Type, Message: reply}, nil
}

func (s *Service) scripted(intent models.Intent) string {
	ranked := s.portfolio.Properties(models.PropertyFilters{})
	if len(ranked) == 0 {
		return emptyPortfolioReply
	}

	switch intent.Type {
	case models.IntentAnalyze:
		return analyzeReply(ranked)
	case models.IntentScores:
		return scoresReply(ranked)
	case models.IntentMarket:
		return marketReply(s.portfolio.Analytics(models.PropertyFilters{}))
	case models.IntentNOI:
		return noiReply(ranked)
	default:
		return fallbackReply
	}
}

func analyzeReply(ranked []models.Property) string {
	positive := 0
	for _, p := range ranked {
		if p.CashFlow > 0 {
			positive++
		}
	}
	best := ranked[0]

	var b strings.Builder
	fmt.Fprintf(&b, "Based on your portfolio analysis, %d of %d properties produce positive monthly cash flow.\n\n", positive, len(ranked))
	fmt.Fprintf(&b, "The strongest candidate is %s, %s (AI score %d, %s): cap rate %.1f%%, cash-on-cash %.1f%%, "+
		"predicted appreciation %.1f%% and rent growth %.1f%% a year, risk score %d.",
		best.Address, best.City, best.AIScore, scoring.TierFor(best.AIScore),
		best.CapRate, best.CoCReturn, best.AppreciationPrediction*100, best.RentGrowthPrediction*100, best.RiskScore)
	return b.String()
}

func scoresReply(ranked []models.Property) string {
	var b strings.Builder
	b.WriteString("Your top-scoring properties based on AI analysis are:\n\n")
	for i, p := range head(ranked, highlightCount) {
		fmt.Fprintf(&b, "%d. %s, %s (Score: %d, %s) - risk %d, walk score %.0f, schools %.0f/10\n",
			i+1, p.Address, p.City, p.AIScore, scoring.TierFor(p.AIScore), p.RiskScore, p.WalkScore, p.SchoolRating)
	}
	b.WriteString("\nThese scores weigh profitability, location quality and risk factors.")
	return b.String()
}

func marketReply(summary models.MarketAnalytics) string {
	var b strings.Builder
	b.WriteString("Current market snapshot:\n\n")
	fmt.Fprintf(&b, "- %d properties, average price %s, average rent %s/mo\n",
		summary.TotalProperties, money(summary.AveragePrice), money(summary.AverageRent))
	fmt.Fprintf(&b, "- Average cap rate %.1f%%, average AI score %.0f\n", summary.AverageCapRate, summary.AverageAIScore)
	fmt.Fprintf(&b, "- Prices %+.1f%% and rents %+.1f%% over 30 days, inventory %+.1f%%\n",
		summary.MarketTrends.PriceChange30Days, summary.MarketTrends.RentChange30Days, summary.MarketTrends.InventoryChange)
	if len(summary.TopPerformingZips) > 0 {
		fmt.Fprintf(&b, "- Top performing ZIP codes: %s\n", strings.Join(summary.TopPerformingZips, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func noiReply(ranked []models.Property) string {
	var b strings.Builder
	b.WriteString("Here are NOI calculations for your top properties:\n\n")
	for _, p := range head(ranked, highlightCount) {
		fmt.Fprintf(&b, "- %s: %s NOI (%.1f%% cap rate, %s/mo cash flow)\n", p.Address, money(p.NOI), p.CapRate, money(p.CashFlow))
	}
	b.WriteString("\nNOI is annual rent minus taxes, insurance, maintenance and monthly expenses.")
	return b.String()
}

func (s *Service) systemPrompt() string {
	ranked := s.portfolio.Properties(models.PropertyFilters{})
	summary := s.portfolio.Analytics(models.PropertyFilters{})

	payload, err := json.Marshal(struct {
		Market models.MarketAnalytics `json:"market"`
		Top    []models.Property      `json:"topProperties"`
	}{Market: summary, Top: head(ranked, contextCount)})
	if err != nil {
		payload = []byte("{}")
	}

	return "You are an AI real estate investment assistant. Answer using only the portfolio data below. " +
		"Scores run 0-100; aiScore is higher-is-better and riskScore is higher-is-riskier. " +
		"Growth predictions are annual fractions. Be concise and concrete.\n\nPortfolio (JSON):\n" + string(payload)
}

// toTurns converts the history into alternating user/assistant turns starting with a user turn.
func toTurns(history []models.ChatMessage) []anthropic.Message {
	turns := make([]anthropic.Message, 0, len(history))
	for _, m := range history {
		role := "user"
		if m.Sender == models.SenderAssistant {
			role = "assistant"
		}
		if len(turns) == 0 && role != "user" {
			continue
		}
		if n := len(turns); n > 0 && turns[n-1].Role == role {
			turns[n-1].Content += "\n" + m.Content
			continue
		}
		turns = append(turns, anthropic.Message{Role: role, Content: m.Content})
	}
	return turns
}

func head(list []models.Property, n int) []models.Property {
	if len(list) < n {
		return list
	}
	return list[:n]
}

// money formats whole dollars with thousands separators.
func money(v float64) string {
	digits := fmt.Sprintf("%.0f", math.Abs(v))
	sign := ""
	if v < 0 && digits != "0" {
		sign = "-"
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String()
}
