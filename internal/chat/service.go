// Package chat owns the conversation/request orchestration: turning a
// free-text query plus an optional attachment into a dispatched analysis
// request and settling it back into the transcript.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"insight-chat/internal/analysis"
	"insight-chat/internal/attachment"
	"insight-chat/internal/audit"
	"insight-chat/internal/shared/metrics"
	"insight-chat/internal/shared/telemetry"
	"insight-chat/internal/transcript"
)

const (
	successContentFormat = "Here's the insight pack for **%s**."
	failureContentFormat = "⚠️ %s Please try again in a moment."
	genericFailure       = "Something went wrong."
)

// Backend is the analysis collaborator: one call, success or failure.
type Backend interface {
	Analyze(ctx context.Context, query string, att *analysis.Attachment) (*analysis.Response, error)
}

// Service is the request orchestrator. It has two states, idle and
// submitting, and allows at most one request in flight system-wide.
type Service struct {
	Transcript transcript.Store
	Selector   *attachment.Selector
	Backend    Backend
	Audit      audit.Store

	submitting atomic.Bool
}

// Busy reports whether a request is in flight. Surfaces use it to disable
// their submit control.
func (s *Service) Busy() bool {
	return s.submitting.Load()
}

// Submit runs one full submission cycle and returns the assistant entry it
// appended. Every outcome of a dispatched request, success or failure, lands
// in the transcript; only local validation (ErrEmptyQuery) and the
// single-flight guard (ErrBusy) surface as errors, and neither touches the
// transcript or the network.
func (s *Service) Submit(ctx context.Context, queryText string) (transcript.Entry, error) {
	query := strings.TrimSpace(queryText)
	if query == "" {
		return transcript.Entry{}, ErrEmptyQuery
	}
	if !s.submitting.CompareAndSwap(false, true) {
		return transcript.Entry{}, ErrBusy
	}
	defer s.submitting.Store(false)

	userEntry := transcript.NewEntry(transcript.RoleUser, query, nil)
	if err := s.Transcript.Append(userEntry); err != nil {
		return transcript.Entry{}, fmt.Errorf("append user entry: %w", err)
	}
	metrics.IncQuerySubmitted()
	s.recordAudit(ctx, query)

	att, err := s.Selector.Payload(ctx)
	if err != nil {
		// Staged bytes went missing; settle as a failure, keep the held file
		// so the user can re-select and retry.
		return s.settleFailure(query, err), nil
	}

	start := metrics.NowMillis()
	resp, err := s.Backend.Analyze(ctx, query, att)
	metrics.ObserveBackendDurationMs(metrics.NowMillis() - start)

	if err != nil {
		return s.settleFailure(query, err), nil
	}
	return s.settleSuccess(query, resp), nil
}

func (s *Service) settleSuccess(query string, resp *analysis.Response) transcript.Entry {
	metrics.IncQueryCompleted()
	entry := transcript.NewEntry(
		transcript.RoleAssistant,
		fmt.Sprintf(successContentFormat, query),
		resp,
	)
	_ = s.Transcript.Append(entry)
	s.Selector.Clear()
	telemetry.Info("chat.settled", map[string]any{
		"message_id": entry.ID,
		"outcome":    "success",
		"rows":       len(resp.TableData),
		"datasets":   len(resp.ChartData.Datasets),
	})
	return entry
}

// settleFailure appends the apology entry and returns to idle. The held
// attachment is intentionally not cleared so the user can resubmit with the
// same file.
func (s *Service) settleFailure(query string, cause error) transcript.Entry {
	metrics.IncQueryFailed()
	description := genericFailure
	if cause != nil && cause.Error() != "" {
		description = cause.Error()
	}
	entry := transcript.NewEntry(
		transcript.RoleAssistant,
		fmt.Sprintf(failureContentFormat, description),
		nil,
	)
	_ = s.Transcript.Append(entry)
	telemetry.Error("chat.settled", map[string]any{
		"message_id": entry.ID,
		"outcome":    "failure",
		"error":      description,
		"query_len":  len(query),
	})
	return entry
}

func (s *Service) recordAudit(ctx context.Context, query string) {
	if s.Audit == nil {
		return
	}
	rec := audit.Record{
		ID:        uuid.NewString(),
		Query:     query,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Audit.Add(ctx, rec); err != nil {
		telemetry.Warn("audit.record_failed", map[string]any{"error": err.Error()})
	}
}
