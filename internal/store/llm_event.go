package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on top of the store.
type eventRepo struct {
	s *Store
}

var llmEventColumns = []string{
	"id", "sequence", "timestamp", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	return r.s.withTx(ctx, func(tx *sql.Tx) error {
		seqNum, err := r.s.seq.Next(ctx, tx)
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}

		ins := r.s.builder().Insert(tableLLMRequests).
			Set("sequence", seqNum).
			Set("timestamp", time.Now().UTC()).
			Set("provider", data.Provider).
			Set("model", data.Model).
			Set("purpose", data.Purpose).
			Set("input_tokens", data.InputTokens).
			Set("output_tokens", data.OutputTokens).
			Set("latency_ms", data.LatencyMs).
			Set("success", data.Success).
			Set("error_message", data.ErrorMessage).
			Set("request_body", data.RequestBody).
			Set("response_body", data.ResponseBody)
		if err := exec(ctx, tx, ins); err != nil {
			return fmt.Errorf("save LLM request event: %w", err)
		}
		return nil
	})
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error) {
	b := r.s.builder()
	sel := b.Select(llmEventColumns...).From(b.Table(tableLLMRequests))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To))
	}
	if opts.Purpose != "" {
		preds = append(preds, entsql.EQ("purpose", opts.Purpose))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	var out []LLMRequestEventRecord
	if err := scanAll(ctx, r.s.db, sel, &out); err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error) {
	b := r.s.builder()
	sel := b.Select(llmEventColumns...).
		From(b.Table(tableLLMRequests)).
		Where(entsql.EQ("id", id))

	var out []LLMRequestEventRecord
	if err := scanAll(ctx, r.s.db, sel, &out); err != nil {
		return nil, fmt.Errorf("get LLM event: %w", err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error) {
	b := r.s.builder()
	sel := b.Select(
		"purpose",
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
		entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
		entsql.As(entsql.Avg("latency_ms"), "avg_latency_ms"),
	).
		From(b.Table(tableLLMRequests)).
		GroupBy("purpose").
		OrderBy("purpose")

	var rows []struct {
		Purpose      string  `sql:"purpose"`
		Calls        int     `sql:"calls"`
		InputTokens  int     `sql:"input_tokens"`
		OutputTokens int     `sql:"output_tokens"`
		AvgLatencyMs float64 `sql:"avg_latency_ms"`
	}
	if err := scanAll(ctx, r.s.db, sel, &rows); err != nil {
		return nil, fmt.Errorf("usage by purpose: %w", err)
	}

	out := make([]LLMUsageStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, LLMUsageStats{
			Purpose:      row.Purpose,
			Calls:        row.Calls,
			InputTokens:  row.InputTokens,
			OutputTokens: row.OutputTokens,
			AvgLatencyMs: int64(row.AvgLatencyMs),
		})
	}
	return out, nil
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	b := r.s.builder()
	sel := b.Select(
		"model",
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
		entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
	).
		From(b.Table(tableLLMRequests)).
		GroupBy("model").
		OrderBy("model")

	var out []LLMModelUsage
	if err := scanAll(ctx, r.s.db, sel, &out); err != nil {
		return nil, fmt.Errorf("usage by model: %w", err)
	}
	return out, nil
}
