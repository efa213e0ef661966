package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/castline/shopfloor/internal/domain/models"
	"github.com/castline/shopfloor/pkg/coerce"
)

// newSkeleton initializes a report for a day that has no document yet:
// every section at its empty form, shift falling back to the sentinel when
// the submission carries none.
func newSkeleton(day dayWindow, shift *string, now time.Time) *models.ShiftReport {
	label := models.DefaultShift
	if shift != nil && strings.TrimSpace(*shift) != "" {
		label = strings.TrimSpace(*shift)
	}

	return &models.ShiftReport{
		Date:               day.Start,
		Shift:              label,
		ProductionDetails:  []models.ProductionRow{},
		NextShiftPlan:      []models.NextShiftPlanRow{},
		Delays:             []models.DelayRow{},
		MouldHardness:      []models.MouldHardnessRow{},
		PatternTemperature: []models.PatternTempRow{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// applySection mutates the report according to the named section's rule.
// create reports whether the report is a freshly-built skeleton rather than
// a stored document; the single event fields behave differently there. A
// section only ever touches its own fields.
func applySection(report *models.ShiftReport, sub models.SectionSubmission, create bool) error {
	switch models.Section(sub.Section) {
	case models.SectionBasicInfo:
		if sub.Shift != nil {
			report.Shift = strings.TrimSpace(*sub.Shift)
		}
		if sub.Incharge != nil {
			report.Incharge = strings.TrimSpace(*sub.Incharge)
		}
		if sub.PPOperator != nil {
			report.PPOperator = strings.TrimSpace(*sub.PPOperator)
		}
		if sub.Members != nil {
			report.MembersPresent = joinMembers(sub.Members)
		}

	case models.SectionProduction:
		if sub.ProductionTable != nil {
			report.ProductionDetails = buildProductionRows(sub.ProductionTable)
		}

	case models.SectionNextShiftPlan:
		if sub.NextShiftPlanTable != nil {
			report.NextShiftPlan = buildNextShiftPlanRows(sub.NextShiftPlanTable)
		}

	case models.SectionDelays:
		if sub.DelaysTable != nil {
			report.Delays = buildDelayRows(sub.DelaysTable)
		}

	case models.SectionMouldHardness:
		if sub.MouldHardnessTable != nil {
			report.MouldHardness = buildMouldHardnessRows(sub.MouldHardnessTable)
		}

	case models.SectionPatternTemp:
		if sub.PatternTempTable != nil {
			report.PatternTemperature = buildPatternTempRows(sub.PatternTempTable)
		}

	case models.SectionSignificantEvent:
		applySingleEventField(&report.SignificantEvent, sub.SignificantEvent, create)

	case models.SectionMaintenance:
		applySingleEventField(&report.Maintenance, sub.Maintenance, create)

	case models.SectionSupervisorName:
		applySingleEventField(&report.SupervisorName, sub.SupervisorName, create)

	case models.SectionEventSection:
		applyEventField(&report.SignificantEvent, sub.SignificantEvent)
		applyEventField(&report.Maintenance, sub.Maintenance)
		applyEventField(&report.SupervisorName, sub.SupervisorName)

	default:
		return newValidationError(map[string]string{
			"section": fmt.Sprintf("unknown section %q", sub.Section),
		})
	}

	return nil
}

// applySingleEventField implements the singly-submitted event field rule: a
// present value replaces the stored one even when blank, except on the
// create path where a blank value is dropped so that an empty string never
// gets persisted ahead of real data.
func applySingleEventField(target *string, value *string, create bool) {
	if value == nil {
		return
	}
	trimmed := strings.TrimSpace(*value)
	if create && trimmed == "" {
		return
	}
	*target = trimmed
}

// applyEventField implements the grouped event-section rule: only a
// non-blank value overwrites, so a blank field submitted alongside filled
// ones never clobbers stored text.
func applyEventField(target *string, value *string) {
	if value == nil {
		return
	}
	if trimmed := strings.TrimSpace(*value); trimmed != "" {
		*target = trimmed
	}
}

// joinMembers turns a members value (a list of names or one delimited
// string) into the stored ", "-joined form, dropping blank entries.
func joinMembers(raw any) string {
	var parts []string
	switch v := raw.(type) {
	case []any:
		for _, entry := range v {
			parts = append(parts, coerce.Trimmed(entry))
		}
	case string:
		parts = strings.Split(v, ",")
	default:
		parts = []string{coerce.Trimmed(raw)}
	}

	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, ", ")
}

// Row builders coerce each incoming row and drop the fully-blank ones.
// Remarks alone do not keep a row alive.

func buildProductionRows(in []models.ProductionRowInput) []models.ProductionRow {
	rows := make([]models.ProductionRow, 0, len(in))
	for _, r := range in {
		row := models.ProductionRow{
			CounterNo:     string(r.CounterNo),
			ComponentName: string(r.ComponentName),
			Produced:      float64(r.Produced),
			Poured:        float64(r.Poured),
			CycleTime:     float64(r.CycleTime),
			MouldsPerHour: float64(r.MouldsPerHour),
			Remarks:       string(r.Remarks),
		}
		if row.CounterNo != "" || row.ComponentName != "" || row.Produced != 0 ||
			row.Poured != 0 || row.CycleTime != 0 || row.MouldsPerHour != 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

func buildNextShiftPlanRows(in []models.NextShiftPlanRowInput) []models.NextShiftPlanRow {
	rows := make([]models.NextShiftPlanRow, 0, len(in))
	for _, r := range in {
		row := models.NextShiftPlanRow{
			ComponentName: string(r.ComponentName),
			PlannedMoulds: float64(r.PlannedMoulds),
			Remarks:       string(r.Remarks),
		}
		if row.ComponentName != "" || row.PlannedMoulds != 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

func buildDelayRows(in []models.DelayRowInput) []models.DelayRow {
	rows := make([]models.DelayRow, 0, len(in))
	for _, r := range in {
		row := models.DelayRow{
			Delays:          string(r.Delays),
			DurationMinutes: float64(r.DurationMinutes),
			DurationTime:    string(r.DurationTime),
		}
		if row.Delays != "" || row.DurationMinutes != 0 || row.DurationTime != "" {
			rows = append(rows, row)
		}
	}
	return rows
}

func buildMouldHardnessRows(in []models.MouldHardnessRowInput) []models.MouldHardnessRow {
	rows := make([]models.MouldHardnessRow, 0, len(in))
	for _, r := range in {
		row := models.MouldHardnessRow{
			ComponentName: string(r.ComponentName),
			MPPP:          float64(r.MPPP),
			MPSP:          float64(r.MPSP),
			BSPP:          float64(r.BSPP),
			BSSP:          float64(r.BSSP),
			Remarks:       string(r.Remarks),
		}
		if row.ComponentName != "" || row.MPPP != 0 || row.MPSP != 0 ||
			row.BSPP != 0 || row.BSSP != 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

func buildPatternTempRows(in []models.PatternTempRowInput) []models.PatternTempRow {
	rows := make([]models.PatternTempRow, 0, len(in))
	for _, r := range in {
		row := models.PatternTempRow{
			Item: string(r.Item),
			PP:   float64(r.PP),
			SP:   float64(r.SP),
		}
		if row.Item != "" || row.PP != 0 || row.SP != 0 {
			rows = append(rows, row)
		}
	}
	return rows
}
