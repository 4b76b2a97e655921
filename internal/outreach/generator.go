// Package outreach drafts first-contact emails for qualified prospects.
package outreach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/lendstack/prospect-pipeline/internal/prospect"
	"github.com/lendstack/prospect-pipeline/internal/resilience"
	"github.com/lendstack/prospect-pipeline/internal/taxonomy"
	"github.com/lendstack/prospect-pipeline/pkg/anthropic"
)

const (
	defaultModel     = "claude-haiku-4-5-20251001"
	defaultMaxTokens = 1024
	maxBodyChars     = 4000
)

const systemPrompt = `You write short, professional first-contact emails for a
small-business lending advisor. The recipient is the owner of the business
described by the user. Keep the tone warm and direct, two short paragraphs at
most, no pricing, no pressure. Respond with a JSON object only:
{"subject": "...", "body": "..."}`

// Email is a drafted outreach message.
type Email struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Generator drafts outreach emails with Claude.
type Generator struct {
	client anthropic.Client
	model  string
	retry  resilience.RetryConfig
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(g *Generator) { g.model = model }
}

// WithRetryConfig overrides the retry policy.
func WithRetryConfig(cfg resilience.RetryConfig) Option {
	return func(g *Generator) { g.retry = cfg }
}

// NewGenerator creates a Generator backed by the given client.
func NewGenerator(client anthropic.Client, opts ...Option) *Generator {
	g := &Generator{
		client: client,
		model:  defaultModel,
		retry:  resilience.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate drafts an email for the prospect. Unqualified prospects are
// rejected so the dial queue never fills with declined leads.
func (g *Generator) Generate(ctx context.Context, p *prospect.Prospect) (*Email, error) {
	if p.Record.Qualification == nil || !p.Record.Qualification.Qualified {
		return nil, eris.Errorf("outreach: prospect %s is not qualified", p.ID)
	}

	userMsg := buildPrompt(p)

	resp, err := resilience.DoVal(ctx, g.retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return g.client.CreateMessage(ctx, anthropic.MessageRequest{
			Model:     g.model,
			MaxTokens: defaultMaxTokens,
			System:    []anthropic.SystemBlock{{Text: systemPrompt}},
			Messages:  []anthropic.Message{{Role: "user", Content: userMsg}},
		})
	})
	if err != nil {
		return nil, eris.Wrap(err, "outreach: claude request")
	}
	resp.Usage.LogCost(g.model, "outreach")

	email, err := parseEmail(resp.Text())
	if err != nil {
		return nil, err
	}

	zap.L().Info("outreach email drafted",
		zap.String("prospect_id", p.ID),
		zap.String("business", p.Record.Name),
		zap.Int("body_chars", len(email.Body)))
	return email, nil
}

// buildPrompt describes the prospect for the model. Only attributes that are
// known are included; estimated bands are labeled as such.
func buildPrompt(p *prospect.Prospect) string {
	var b strings.Builder
	rec := &p.Record

	fmt.Fprintf(&b, "Business name: %s\n", rec.Name)
	if display := taxonomy.DisplayName(rec.BusinessType); display != "" {
		fmt.Fprintf(&b, "Business type: %s\n", display)
	}
	if rec.Address != "" {
		fmt.Fprintf(&b, "Location: %s\n", rec.Address)
	}
	if rec.Rating > 0 {
		fmt.Fprintf(&b, "Google rating: %.1f (%d reviews)\n", rec.Rating, rec.ReviewCount)
	}
	if rec.RevenueBand != "" {
		fmt.Fprintf(&b, "Estimated monthly revenue: %s\n", rec.RevenueBand)
	}
	if rec.YearsBand != "" {
		fmt.Fprintf(&b, "Estimated years in business: %s\n", rec.YearsBand)
	}
	fmt.Fprintf(&b, "Qualification score: %d/100\n", rec.Qualification.Score)

	return b.String()
}

// parseEmail extracts the JSON email from the response text, which may carry
// surrounding prose.
func parseEmail(text string) (*Email, error) {
	if text == "" {
		return nil, eris.New("outreach: empty claude response")
	}

	jsonStart := strings.Index(text, "{")
	jsonEnd := strings.LastIndex(text, "}")
	if jsonStart < 0 || jsonEnd <= jsonStart {
		return nil, eris.Errorf("outreach: no JSON in response: %s", truncate(text, 120))
	}

	var email Email
	if err := json.Unmarshal([]byte(text[jsonStart:jsonEnd+1]), &email); err != nil {
		return nil, eris.Wrap(err, "outreach: parse response JSON")
	}
	if email.Subject == "" || email.Body == "" {
		return nil, eris.New("outreach: response missing subject or body")
	}
	if len(email.Body) > maxBodyChars {
		email.Body = email.Body[:maxBodyChars]
	}
	return &email, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
