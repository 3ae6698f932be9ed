package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/lingua/internal/logger"
	"github.com/abhisek/lingua/internal/store"
)

// LoggingProvider records every request as an LLM event.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
	log       *logger.Logger
}

// WithLogging wraps p so each call is appended to the event log. A failure
// to record is logged as a warning and never fails the request.
func WithLogging(p Provider, providerName string, repo store.EventRepo, log *logger.Logger) Provider {
	return &LoggingProvider{inner: p, provider: providerName, eventRepo: repo, log: logger.OrNop(log)}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LessonID:    LessonFrom(ctx),
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = resp.Text
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		var truncated *ErrMaxTokensExceeded
		if errors.As(err, &truncated) {
			data.ResponseBody = truncated.Text
		}
	}

	l.log.Debug("llm request",
		"provider", data.Provider,
		"model", data.Model,
		"purpose", data.Purpose,
		"lesson", data.LessonID,
		"latency", latency,
		"ok", data.Success,
	)

	// Use a fresh context so a cancelled request is still recorded.
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if logErr := l.eventRepo.AppendLLMRequest(recordCtx, data); logErr != nil {
		l.log.Warn("failed to record LLM request event", "error", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest renders the request as readable text for `llm view`.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
