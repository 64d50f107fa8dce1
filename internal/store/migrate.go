package store

import (
	"context"
	"fmt"
	"math"

	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	tablePlayers     = "players"
	tableProgress    = "standard_progress"
	tableAttempts    = "problem_attempts"
	tableBadges      = "badge_unlocks"
	tableSessions    = "study_sessions"
	tableChat        = "chat_messages"
	tableLLMRequests = "llm_request_events"
	tableSequence    = "global_sequence"
)

func textCol(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeString, Size: math.MaxInt32, Default: ""}
}

func strCol(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeString, Size: 255}
}

func intCol(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeInt, Default: 0}
}

func int64Col(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeInt64, Default: 0}
}

func timeCol(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeTime}
}

func idCol() *schema.Column {
	return &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
}

// tables describes the full schema. Event tables carry the shared
// sequence column for cross-table ordering.
func tables() []*schema.Table {
	players := schema.NewTable(tablePlayers).
		AddPrimary(strCol("user_id")).
		AddColumn(intCol("xp")).
		AddColumn(intCol("level")).
		AddColumn(intCol("current_streak")).
		AddColumn(intCol("best_streak")).
		AddColumn(textCol("badges")).
		AddColumn(&schema.Column{Name: "last_problem_date", Type: field.TypeString, Size: 16, Default: ""}).
		AddColumn(&schema.Column{Name: "last_correct_date", Type: field.TypeString, Size: 16, Default: ""}).
		AddColumn(intCol("session_correct")).
		AddColumn(intCol("session_wrong")).
		AddColumn(intCol("comeback_count")).
		AddColumn(textCol("domains_attempted")).
		AddColumn(intCol("total_problems")).
		AddColumn(intCol("total_correct")).
		AddColumn(intCol("total_study_minutes")).
		AddColumn(intCol("weekly_study_minutes")).
		AddColumn(timeCol("last_week_reset")).
		AddColumn(timeCol("created_at")).
		AddColumn(timeCol("updated_at"))

	progress := schema.NewTable(tableProgress).
		AddPrimary(idCol()).
		AddColumn(strCol("user_id")).
		AddColumn(strCol("standard_id")).
		AddColumn(intCol("problems_attempted")).
		AddColumn(intCol("problems_correct")).
		AddColumn(intCol("mastery_level")).
		AddColumn(timeCol("last_practiced"))
	progress.AddIndex("standardprogress_user_id_standard_id", true, []string{"user_id", "standard_id"})

	attempts := schema.NewTable(tableAttempts).
		AddPrimary(strCol("id")).
		AddColumn(&schema.Column{Name: "sequence", Type: field.TypeInt64, Unique: true}).
		AddColumn(strCol("user_id")).
		AddColumn(strCol("standard_id")).
		AddColumn(textCol("question")).
		AddColumn(textCol("user_answer")).
		AddColumn(textCol("correct_answer")).
		AddColumn(&schema.Column{Name: "is_correct", Type: field.TypeBool}).
		AddColumn(timeCol("created_at"))
	attempts.AddIndex("problemattempt_user_id", false, []string{"user_id"})
	attempts.AddIndex("problemattempt_created_at", false, []string{"created_at"})

	badges := schema.NewTable(tableBadges).
		AddPrimary(idCol()).
		AddColumn(&schema.Column{Name: "sequence", Type: field.TypeInt64, Unique: true}).
		AddColumn(strCol("user_id")).
		AddColumn(strCol("badge_id")).
		AddColumn(timeCol("unlocked_at"))
	badges.AddIndex("badgeunlock_user_id_badge_id", true, []string{"user_id", "badge_id"})

	sessions := schema.NewTable(tableSessions).
		AddPrimary(strCol("id")).
		AddColumn(strCol("user_id")).
		AddColumn(timeCol("start_time")).
		AddColumn(&schema.Column{Name: "end_time", Type: field.TypeTime, Nullable: true}).
		AddColumn(intCol("duration_minutes")).
		AddColumn(textCol("standards_worked_on"))
	sessions.AddIndex("studysession_user_id", false, []string{"user_id"})

	chat := schema.NewTable(tableChat).
		AddPrimary(strCol("id")).
		AddColumn(&schema.Column{Name: "sequence", Type: field.TypeInt64, Unique: true}).
		AddColumn(strCol("user_id")).
		AddColumn(&schema.Column{Name: "role", Type: field.TypeString, Size: 16}).
		AddColumn(textCol("content")).
		AddColumn(textCol("related_standards")).
		AddColumn(timeCol("created_at"))
	chat.AddIndex("chatmessage_user_id", false, []string{"user_id"})

	llmEvents := schema.NewTable(tableLLMRequests).
		AddPrimary(idCol()).
		AddColumn(&schema.Column{Name: "sequence", Type: field.TypeInt64, Unique: true}).
		AddColumn(timeCol("timestamp")).
		AddColumn(strCol("provider")).
		AddColumn(strCol("model")).
		AddColumn(strCol("purpose")).
		AddColumn(intCol("input_tokens")).
		AddColumn(intCol("output_tokens")).
		AddColumn(int64Col("latency_ms")).
		AddColumn(&schema.Column{Name: "success", Type: field.TypeBool}).
		AddColumn(textCol("error_message")).
		AddColumn(textCol("request_body")).
		AddColumn(textCol("response_body"))
	llmEvents.AddIndex("llmrequestevent_purpose", false, []string{"purpose"})
	llmEvents.AddIndex("llmrequestevent_timestamp", false, []string{"timestamp"})

	sequence := schema.NewTable(tableSequence).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: "next_val", Type: field.TypeInt64, Default: 1})

	return []*schema.Table{players, progress, attempts, badges, sessions, chat, llmEvents, sequence}
}

// migrate creates or updates all tables.
func (s *Store) migrate(ctx context.Context) error {
	m, err := schema.NewMigrate(s.drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	return m.Create(ctx, tables()...)
}
