package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/castline/shopfloor/internal/config"
	"github.com/castline/shopfloor/internal/domain/models"
	"github.com/castline/shopfloor/internal/repository/sheets"
	"github.com/castline/shopfloor/internal/service/report"
	"github.com/castline/shopfloor/pkg/clients/notify"
)

const dateLayout = "2006-01-02"

// Scheduler runs the end-of-day completeness sweep: it checks whether the
// day's shift report was filed and complete, alerts the configured webhook
// about gaps, and mirrors a summary row to the Google Sheets archive.
// archive and notifier may be nil when those integrations are not
// configured.
type Scheduler struct {
	cron      *cron.Cron
	reportSvc *report.Service
	archive   sheets.Repository
	notifier  notify.Client
	loc       *time.Location
	schedule  string
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance running in the given
// location.
func NewScheduler(cfg config.ReportingConfig, reportSvc *report.Service, archive sheets.Repository, notifier notify.Client, loc *time.Location, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		reportSvc: reportSvc,
		archive:   archive,
		notifier:  notifier,
		loc:       loc,
		schedule:  cfg.CronSchedule,
		logger:    logger,
	}
}

// Start registers the sweep and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.runCompletenessSweep); err != nil {
		s.logger.Error("failed to schedule completeness sweep", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runCompletenessSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	day := time.Now().In(s.loc).Format(dateLayout)
	s.logger.Info("running completeness sweep", zap.String("date", day))

	reports, err := s.reportSvc.GetByDate(ctx, day)
	if err != nil {
		s.logger.Error("completeness sweep failed", zap.Error(err))
		return
	}

	if len(reports) == 0 {
		s.logger.Warn("no shift report filed for the day", zap.String("date", day))
		s.alert(ctx, "Missing shift report",
			fmt.Sprintf("No Disamatic shift report was filed for %s.", day))
		return
	}

	for _, r := range reports {
		if gaps := missingSections(r); len(gaps) > 0 {
			s.logger.Warn("shift report incomplete",
				zap.String("date", day),
				zap.String("shift", r.Shift),
				zap.Strings("missing", gaps))
			s.alert(ctx, "Incomplete shift report",
				fmt.Sprintf("Shift report for %s (shift %s) is missing: %v.", day, r.Shift, gaps))
		}

		s.archiveSummary(ctx, r)
	}
}

func missingSections(r models.ShiftReport) []string {
	var gaps []string
	if len(r.ProductionDetails) == 0 {
		gaps = append(gaps, "production")
	}
	if r.SupervisorName == "" {
		gaps = append(gaps, "supervisorName")
	}
	if r.Incharge == "" {
		gaps = append(gaps, "incharge")
	}
	return gaps
}

func (s *Scheduler) alert(ctx context.Context, subject, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(ctx, notify.Notification{Subject: subject, Message: message}); err != nil {
		s.logger.Error("failed to send alert", zap.Error(err))
	}
}

func (s *Scheduler) archiveSummary(ctx context.Context, r models.ShiftReport) {
	if s.archive == nil {
		return
	}

	var produced, poured float64
	for _, row := range r.ProductionDetails {
		produced += row.Produced
		poured += row.Poured
	}

	row := []interface{}{
		r.Date.In(s.loc).Format(dateLayout),
		r.Shift,
		r.Incharge,
		produced,
		poured,
		len(r.Delays),
		r.SupervisorName,
	}

	if err := s.archive.AppendSummaryRow(ctx, row); err != nil {
		s.logger.Error("failed to archive report summary", zap.Error(err))
	} else {
		s.logger.Info("report summary archived", zap.String("date", r.Date.In(s.loc).Format(dateLayout)))
	}
}
