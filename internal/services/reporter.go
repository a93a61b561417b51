package services

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"gamehub/internal/models"
)

const MaxReportReasonRunes = 500

// ModerationReporter records user reports. Reports are append-only and do not
// change any read view.
type ModerationReporter struct {
	store  ReportStore
	fanout *Fanout
}

func NewModerationReporter(st ReportStore, f *Fanout) *ModerationReporter {
	return &ModerationReporter{store: st, fanout: f}
}

// Submit reports whether a report row was written. It never returns an error.
func (r *ModerationReporter) Submit(ctx context.Context, viewerID, postID uint, reason string, confirm Confirm) bool {
	ok := r.submit(ctx, viewerID, postID, reason, confirm)
	if ok {
		reportTotal.WithLabelValues("stored").Inc()
	} else {
		reportTotal.WithLabelValues("rejected").Inc()
	}
	return ok
}

func (r *ModerationReporter) submit(ctx context.Context, viewerID, postID uint, reason string, confirm Confirm) bool {
	reason = strings.TrimSpace(reason)
	if reason == "" || viewerID == 0 || postID == 0 {
		return false
	}
	if utf8.RuneCountInString(reason) > MaxReportReasonRunes {
		reason = string([]rune(reason)[:MaxReportReasonRunes])
	}
	if !confirmed(ctx, confirm, "Report this post?") {
		return false
	}

	ctx, cancel := r.fanout.withTimeout(ctx)
	defer cancel()
	report := &models.Report{TargetPostID: postID, ReporterID: viewerID, Reason: reason}
	if err := r.store.CreateReport(ctx, report); err != nil {
		slog.ErrorContext(ctx, "report insert failed", "post_id", postID, "reporter_id", viewerID, "error", err)
		return false
	}
	slog.InfoContext(ctx, "post reported", "report_id", report.ID, "post_id", postID, "reporter_id", viewerID)
	return true
}
