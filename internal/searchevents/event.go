// Package searchevents records what users search for. Events are analytics,
// not an audit trail: publishing is fire-and-forget and never fails a search.
package searchevents

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"

	"advocatehub/internal/search"
	"advocatehub/pkg/requestcontext"
)

// Outcome is how a search ended.
type Outcome string

const (
	OutcomeOK    Outcome = "ok"
	OutcomeError Outcome = "error"
)

// Event describes one executed search.
type Event struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"requestId,omitempty"`
	ClientIP   string    `json:"clientIp,omitempty"`
	Browser    string    `json:"browser,omitempty"`
	Mobile     bool      `json:"mobile"`
	Bot        bool      `json:"bot"`
	Query      string    `json:"search,omitempty"`
	City       string    `json:"city,omitempty"`
	Specialty  string    `json:"specialty,omitempty"`
	Degree     string    `json:"degree,omitempty"`
	Experience string    `json:"experience,omitempty"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	Total      int       `json:"total"`
	Returned   int       `json:"returned"`
	Outcome    Outcome   `json:"outcome"`
	DurationMS int64     `json:"durationMs"`
}

// NewEvent starts an event for c, enriched with the request metadata carried
// by ctx. Callers fill in the result fields.
func NewEvent(ctx context.Context, c search.Criteria, at time.Time) Event {
	agent := ClassifyUserAgent(requestcontext.UserAgent(ctx))
	return Event{
		ID:         uuid.NewString(),
		Timestamp:  at,
		RequestID:  requestcontext.RequestID(ctx),
		ClientIP:   requestcontext.ClientIP(ctx),
		Browser:    agent.Browser,
		Mobile:     agent.Mobile,
		Bot:        agent.Bot,
		Query:      c.Query,
		City:       c.City,
		Specialty:  c.Specialty,
		Degree:     c.Degree,
		Experience: c.Experience,
		Page:       c.Page,
		Limit:      c.Limit,
	}
}

// Agent is the coarse client classification attached to events.
type Agent struct {
	Browser string
	Mobile  bool
	Bot     bool
}

// ClassifyUserAgent reduces a User-Agent header to browser name, mobile and
// bot flags. An empty header yields the zero Agent.
func ClassifyUserAgent(header string) Agent {
	if header == "" {
		return Agent{}
	}
	ua := useragent.New(header)
	name, _ := ua.Browser()
	return Agent{
		Browser: name,
		Mobile:  ua.Mobile(),
		Bot:     ua.Bot(),
	}
}
