// Package homework asks a vision-capable LLM to coach a student through a
// homework problem without giving the answer away.
package homework

import (
	"context"
	"strings"

	"github.com/pawsitive/mathcat/internal/llm"
	"github.com/pawsitive/mathcat/internal/logger"
	"github.com/pawsitive/mathcat/internal/quota"
)

// Purpose labels homework calls in the LLM event log.
const Purpose = "homework"

const (
	DefaultMaxTokens     = 1500
	DefaultHistoryWindow = 10
)

// Role is who said a history turn.
type Role string

const (
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
)

// Turn is one earlier message in the homework conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request is a single homework-help question. Image is an optional data
// URL; at least one of Image and Text must be set.
type Request struct {
	UserID  string `json:"userId"`
	Image   string `json:"image,omitempty"`
	Text    string `json:"text,omitempty"`
	History []Turn `json:"messageHistory,omitempty"`
}

// Service answers homework requests.
type Service struct {
	provider  llm.Provider
	limiter   quota.Limiter
	log       *logger.Logger
	maxTokens int
	window    int
}

// Option configures a Service.
type Option func(*Service)

// WithLimiter caps requests per user per day.
func WithLimiter(l quota.Limiter) Option {
	return func(s *Service) { s.limiter = l }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithMaxTokens overrides the reply token budget.
func WithMaxTokens(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxTokens = n
		}
	}
}

// WithHistoryWindow overrides how many earlier turns are sent.
func WithHistoryWindow(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.window = n
		}
	}
}

// NewService returns a Service backed by provider.
func NewService(provider llm.Provider, opts ...Option) *Service {
	s := &Service{
		provider:  provider,
		limiter:   quota.Unlimited{},
		log:       logger.Nop(),
		maxTokens: DefaultMaxTokens,
		window:    DefaultHistoryWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze validates the request, spends one unit of the user's daily
// quota and returns the tutor's reply. Every error it returns is an
// *Error carrying the student-facing message.
func (s *Service) Analyze(ctx context.Context, req Request) (string, error) {
	text := strings.TrimSpace(req.Text)
	if req.Image == "" && text == "" {
		return "", Classify(ErrEmptyRequest)
	}

	var img *llm.Image
	if req.Image != "" {
		parsed, err := ParseDataURL(req.Image)
		if err != nil {
			s.log.Warn("homework image rejected", "user_id", req.UserID, "error", err)
			return "", Classify(err)
		}
		img = &parsed
	}

	if _, err := s.limiter.Allow(ctx, req.UserID); err != nil {
		s.log.Info("homework quota refused", "user_id", req.UserID, "error", err)
		return "", Classify(err)
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, Purpose), llm.Request{
		System:    systemPrompt,
		Messages:  buildMessages(req.History, s.window, text, img),
		MaxTokens: s.maxTokens,
	})
	if err != nil {
		he := Classify(err)
		s.log.Error("homework analysis failed",
			"user_id", req.UserID, "kind", he.Kind, "status", he.Status, "error", err)
		return "", he
	}

	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		reply = MsgEmptyAnswer
	}
	s.log.Info("homework analyzed",
		"user_id", req.UserID, "image", img != nil,
		"history", len(req.History), "output_tokens", resp.Usage.OutputTokens)
	return reply, nil
}
