package security

import (
	"crypto/sha256"
	"fmt"

	"github.com/rs/zerolog/log"
)

// AuditLogger records pipeline activity with hashed identifiers so logs
// stay useful without retaining question text.
type AuditLogger struct {
	enabled bool
}

func NewAuditLogger(enabled bool) *AuditLogger {
	return &AuditLogger{enabled: enabled}
}

// LogRun records one question-to-insight pipeline run.
func (a *AuditLogger) LogRun(question, sql string, rowCount int, durationMs int64, success bool, errMsg string) {
	if !a.enabled {
		return
	}
	questionHash := hashStr(question)[:16]
	sqlHash := ""
	if sql != "" {
		sqlHash = hashStr(sql)[:16]
	}

	evt := log.Info().
		Str("event", "run_audit").
		Str("question_hash", questionHash).
		Str("sql_hash", sqlHash).
		Int("row_count", rowCount).
		Int64("duration_ms", durationMs).
		Bool("success", success)

	if errMsg != "" {
		evt = evt.Str("error", errMsg)
	}
	evt.Msg("audit")
}

// LogRefresh records one dashboard refresh.
func (a *AuditLogger) LogRefresh(durationMs int64, briefGenerated bool) {
	if !a.enabled {
		return
	}
	log.Info().
		Str("event", "refresh_audit").
		Int64("duration_ms", durationMs).
		Bool("brief_generated", briefGenerated).
		Msg("audit")
}

func hashStr(s string) string {
	h := sha256.Sum256([]byte(s))
	return fmt.Sprintf("%x", h)
}
