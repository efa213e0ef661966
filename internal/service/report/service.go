package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/castline/shopfloor/internal/domain/models"
	"github.com/castline/shopfloor/internal/repository/mongodb"
)

// Service is the section merge engine for Disamatic shift reports. It owns
// date normalization, the per-day locate-then-branch upsert and the plain
// document operations behind the REST surface.
//
// The locate -> branch -> persist sequence is not transactional: two
// concurrent submissions for the same day can both observe "not found" and
// create duplicate documents, or overwrite each other's merge. Known
// hazard, inherited from the original workflow and left unguarded.
type Service struct {
	repo   mongodb.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewService wires a report service instance. loc defines the local day
// boundary used for report identity; a nil loc falls back to time.Local.
func NewService(repo mongodb.Repository, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{repo: repo, loc: loc, logger: logger}
}

// SubmitResult reports the outcome of a section submission.
type SubmitResult struct {
	Report  *models.ShiftReport
	Created bool
}

// SubmitSection applies one named section's payload to the day identified by
// the submission date, creating the day's document on first touch and
// merging into it afterwards.
func (s *Service) SubmitSection(ctx context.Context, sub models.SectionSubmission) (*SubmitResult, error) {
	window, err := normalizeDay(sub.Date, s.loc)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByDay(ctx, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("locate report: %w", err)
	}

	now := time.Now().In(s.loc)

	if existing != nil {
		if err := applySection(existing, sub, false); err != nil {
			return nil, err
		}
		existing.UpdatedAt = now
		if err := s.repo.Replace(ctx, existing); err != nil {
			return nil, fmt.Errorf("persist merged report: %w", err)
		}
		s.logger.Info("section merged into existing report",
			zap.String("section", sub.Section),
			zap.String("date", window.Start.Format(dateLayout)))
		return &SubmitResult{Report: existing, Created: false}, nil
	}

	skeleton := newSkeleton(window, sub.Shift, now)
	if err := applySection(skeleton, sub, true); err != nil {
		return nil, err
	}

	saved, err := s.repo.Insert(ctx, skeleton)
	if err != nil {
		return nil, fmt.Errorf("persist new report: %w", err)
	}
	s.logger.Info("report created from section submission",
		zap.String("section", sub.Section),
		zap.String("date", window.Start.Format(dateLayout)))
	return &SubmitResult{Report: saved, Created: true}, nil
}

// CreateFull persists a brand-new full document from the legacy no-section
// path. It deliberately performs no same-day existence check, so duplicate
// documents for one day are possible here.
func (s *Service) CreateFull(ctx context.Context, in models.FullReportInput) (*models.ShiftReport, error) {
	if err := validateFullInput(in); err != nil {
		return nil, err
	}

	window, err := normalizeDay(in.Date, s.loc)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(s.loc)
	doc := buildFullReport(in, window, now)
	doc.CreatedAt = now

	saved, err := s.repo.Insert(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("persist report: %w", err)
	}
	s.logger.Info("full report created", zap.String("date", window.Start.Format(dateLayout)))
	return saved, nil
}

// List returns every report, newest date first.
func (s *Service) List(ctx context.Context) ([]models.ShiftReport, error) {
	reports, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// GetByDate returns the reports for a single calendar day as a list, empty
// when the day has none.
func (s *Service) GetByDate(ctx context.Context, date string) ([]models.ShiftReport, error) {
	window, err := normalizeDay(date, s.loc)
	if err != nil {
		return nil, err
	}
	reports, err := s.repo.FindRange(ctx, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("query reports by date: %w", err)
	}
	return reports, nil
}

// GetRange returns reports for the inclusive day range [startDate, endDate],
// the end date's window extended to day end.
func (s *Service) GetRange(ctx context.Context, startDate, endDate string) ([]models.ShiftReport, error) {
	fields := map[string]string{}
	if strings.TrimSpace(startDate) == "" {
		fields["startDate"] = "startDate is required"
	}
	if strings.TrimSpace(endDate) == "" {
		fields["endDate"] = "endDate is required"
	}
	if len(fields) > 0 {
		return nil, newValidationError(fields)
	}

	startWindow, err := normalizeDay(startDate, s.loc)
	if err != nil {
		return nil, err
	}
	endWindow, err := normalizeDay(endDate, s.loc)
	if err != nil {
		return nil, err
	}

	reports, err := s.repo.FindRange(ctx, startWindow.Start, endWindow.End)
	if err != nil {
		return nil, fmt.Errorf("query report range: %w", err)
	}
	return reports, nil
}

// GetByID returns the report with the given document identity.
func (s *Service) GetByID(ctx context.Context, id string) (*models.ShiftReport, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find report: %w", err)
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// Replace validates and fully replaces the document with the given
// identity, preserving its identity and creation timestamp.
func (s *Service) Replace(ctx context.Context, id string, in models.FullReportInput) (*models.ShiftReport, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find report: %w", err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if err := validateFullInput(in); err != nil {
		return nil, err
	}
	window, err := normalizeDay(in.Date, s.loc)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(s.loc)
	doc := buildFullReport(in, window, now)
	doc.ID = existing.ID
	doc.CreatedAt = existing.CreatedAt

	if err := s.repo.Replace(ctx, doc); err != nil {
		return nil, fmt.Errorf("replace report: %w", err)
	}
	s.logger.Info("report replaced", zap.String("id", id))
	return doc, nil
}

// Delete removes the whole day's report addressed by document identity.
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	s.logger.Info("report deleted", zap.String("id", id))
	return nil
}

func validateFullInput(in models.FullReportInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(in.Date) == "" {
		fields["date"] = "date is required"
	}
	if strings.TrimSpace(in.Shift) == "" {
		fields["shift"] = "shift is required"
	}
	if strings.TrimSpace(in.Incharge) == "" {
		fields["incharge"] = "incharge is required"
	}
	if len(fields) > 0 {
		return newValidationError(fields)
	}
	return nil
}

func buildFullReport(in models.FullReportInput, window dayWindow, now time.Time) *models.ShiftReport {
	members := strings.TrimSpace(in.MembersPresent)
	if in.Members != nil {
		members = joinMembers(in.Members)
	}

	return &models.ShiftReport{
		Date:               window.Start,
		Shift:              strings.TrimSpace(in.Shift),
		Incharge:           strings.TrimSpace(in.Incharge),
		PPOperator:         strings.TrimSpace(in.PPOperator),
		MembersPresent:     members,
		ProductionDetails:  buildProductionRows(in.ProductionDetails),
		NextShiftPlan:      buildNextShiftPlanRows(in.NextShiftPlan),
		Delays:             buildDelayRows(in.Delays),
		MouldHardness:      buildMouldHardnessRows(in.MouldHardness),
		PatternTemperature: buildPatternTempRows(in.PatternTemperature),
		SignificantEvent:   strings.TrimSpace(in.SignificantEvent),
		Maintenance:        strings.TrimSpace(in.Maintenance),
		SupervisorName:     strings.TrimSpace(in.SupervisorName),
		UpdatedAt:          now,
	}
}
