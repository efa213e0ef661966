package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/castline/shopfloor/pkg/coerce"
)

// Section identifies one independently-submittable part of a shift report.
type Section string

const (
	SectionBasicInfo        Section = "basicInfo"
	SectionProduction       Section = "production"
	SectionNextShiftPlan    Section = "nextShiftPlan"
	SectionDelays           Section = "delays"
	SectionMouldHardness    Section = "mouldHardness"
	SectionPatternTemp      Section = "patternTemp"
	SectionSignificantEvent Section = "significantEvent"
	SectionMaintenance      Section = "maintenance"
	SectionSupervisorName   Section = "supervisorName"
	SectionEventSection     Section = "eventSection"
)

// DefaultShift is stored when a report is born from a section submission
// that carries no shift label.
const DefaultShift = "Not Set"

// ProductionRow is one counter line of the moulding production table.
type ProductionRow struct {
	CounterNo     string  `bson:"counterNo" json:"counterNo"`
	ComponentName string  `bson:"componentName" json:"componentName"`
	Produced      float64 `bson:"produced" json:"produced"`
	Poured        float64 `bson:"poured" json:"poured"`
	CycleTime     float64 `bson:"cycleTime" json:"cycleTime"`
	MouldsPerHour float64 `bson:"mouldsPerHour" json:"mouldsPerHour"`
	Remarks       string  `bson:"remarks" json:"remarks"`
}

// NextShiftPlanRow is one planned component for the following shift.
type NextShiftPlanRow struct {
	ComponentName string  `bson:"componentName" json:"componentName"`
	PlannedMoulds float64 `bson:"plannedMoulds" json:"plannedMoulds"`
	Remarks       string  `bson:"remarks" json:"remarks"`
}

// DelayRow is one stoppage entry in the delay log.
type DelayRow struct {
	Delays          string  `bson:"delays" json:"delays"`
	DurationMinutes float64 `bson:"durationMinutes" json:"durationMinutes"`
	DurationTime    string  `bson:"durationTime" json:"durationTime"`
}

// MouldHardnessRow carries mould hardness readings per component, pattern
// plate and squeeze plate sides for both machine positions.
type MouldHardnessRow struct {
	ComponentName string  `bson:"componentName" json:"componentName"`
	MPPP          float64 `bson:"mpPP" json:"mpPP"`
	MPSP          float64 `bson:"mpSP" json:"mpSP"`
	BSPP          float64 `bson:"bsPP" json:"bsPP"`
	BSSP          float64 `bson:"bsSP" json:"bsSP"`
	Remarks       string  `bson:"remarks" json:"remarks"`
}

// PatternTempRow is one pattern temperature reading.
type PatternTempRow struct {
	Item string  `bson:"item" json:"item"`
	PP   float64 `bson:"pp" json:"pp"`
	SP   float64 `bson:"sp" json:"sp"`
}

// ShiftReport is the single Disamatic moulding shift report document for one
// calendar day. Date is normalized to local midnight and acts as the de
// facto unique key.
type ShiftReport struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Date               time.Time          `bson:"date" json:"date"`
	Shift              string             `bson:"shift" json:"shift"`
	Incharge           string             `bson:"incharge" json:"incharge"`
	PPOperator         string             `bson:"ppOperator" json:"ppOperator"`
	MembersPresent     string             `bson:"membersPresent" json:"membersPresent"`
	ProductionDetails  []ProductionRow    `bson:"productionDetails" json:"productionDetails"`
	NextShiftPlan      []NextShiftPlanRow `bson:"nextShiftPlan" json:"nextShiftPlan"`
	Delays             []DelayRow         `bson:"delays" json:"delays"`
	MouldHardness      []MouldHardnessRow `bson:"mouldHardness" json:"mouldHardness"`
	PatternTemperature []PatternTempRow   `bson:"patternTemperature" json:"patternTemperature"`
	SignificantEvent   string             `bson:"significantEvent" json:"significantEvent"`
	Maintenance        string             `bson:"maintenance" json:"maintenance"`
	SupervisorName     string             `bson:"supervisorName" json:"supervisorName"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Input row types mirror the stored rows but tolerate the loose typing of
// form submissions: numeric cells may arrive as strings, text cells may
// arrive as numbers, and blanks coerce to their zero form.

// ProductionRowInput is the wire form of ProductionRow.
type ProductionRowInput struct {
	CounterNo     coerce.TrimmedString `json:"counterNo"`
	ComponentName coerce.TrimmedString `json:"componentName"`
	Produced      coerce.Float         `json:"produced"`
	Poured        coerce.Float         `json:"poured"`
	CycleTime     coerce.Float         `json:"cycleTime"`
	MouldsPerHour coerce.Float         `json:"mouldsPerHour"`
	Remarks       coerce.TrimmedString `json:"remarks"`
}

// NextShiftPlanRowInput is the wire form of NextShiftPlanRow.
type NextShiftPlanRowInput struct {
	ComponentName coerce.TrimmedString `json:"componentName"`
	PlannedMoulds coerce.Float         `json:"plannedMoulds"`
	Remarks       coerce.TrimmedString `json:"remarks"`
}

// DelayRowInput is the wire form of DelayRow.
type DelayRowInput struct {
	Delays          coerce.TrimmedString `json:"delays"`
	DurationMinutes coerce.Float         `json:"durationMinutes"`
	DurationTime    coerce.TrimmedString `json:"durationTime"`
}

// MouldHardnessRowInput is the wire form of MouldHardnessRow.
type MouldHardnessRowInput struct {
	ComponentName coerce.TrimmedString `json:"componentName"`
	MPPP          coerce.Float         `json:"mpPP"`
	MPSP          coerce.Float         `json:"mpSP"`
	BSPP          coerce.Float         `json:"bsPP"`
	BSSP          coerce.Float         `json:"bsSP"`
	Remarks       coerce.TrimmedString `json:"remarks"`
}

// PatternTempRowInput is the wire form of PatternTempRow.
type PatternTempRowInput struct {
	Item coerce.TrimmedString `json:"item"`
	PP   coerce.Float         `json:"pp"`
	SP   coerce.Float         `json:"sp"`
}

// SectionSubmission is the POST body of the section-wise merge path.
// Pointer and nil-slice fields distinguish an absent key from a
// present-but-blank one; the merge rules depend on that distinction.
type SectionSubmission struct {
	Date    string  `json:"date"`
	Shift   *string `json:"shift"`
	Section string  `json:"section"`

	Incharge   *string `json:"incharge"`
	PPOperator *string `json:"ppOperator"`
	Members    any     `json:"members"`

	ProductionTable    []ProductionRowInput    `json:"productionTable"`
	NextShiftPlanTable []NextShiftPlanRowInput `json:"nextShiftPlanTable"`
	DelaysTable        []DelayRowInput         `json:"delaysTable"`
	MouldHardnessTable []MouldHardnessRowInput `json:"mouldHardnessTable"`
	PatternTempTable   []PatternTempRowInput   `json:"patternTempTable"`

	SignificantEvent *string `json:"significantEvent"`
	Maintenance      *string `json:"maintenance"`
	SupervisorName   *string `json:"supervisorName"`
}

// FullReportInput is the body of the no-section bulk create path and of the
// PUT full-replace endpoint. Field names mirror the stored document; the
// legacy "members" key is still accepted as a list or delimited string.
type FullReportInput struct {
	Date               string                  `json:"date"`
	Shift              string                  `json:"shift"`
	Incharge           string                  `json:"incharge"`
	PPOperator         string                  `json:"ppOperator"`
	Members            any                     `json:"members"`
	MembersPresent     string                  `json:"membersPresent"`
	ProductionDetails  []ProductionRowInput    `json:"productionDetails"`
	NextShiftPlan      []NextShiftPlanRowInput `json:"nextShiftPlan"`
	Delays             []DelayRowInput         `json:"delays"`
	MouldHardness      []MouldHardnessRowInput `json:"mouldHardness"`
	PatternTemperature []PatternTempRowInput   `json:"patternTemperature"`
	SignificantEvent   string                  `json:"significantEvent"`
	Maintenance        string                  `json:"maintenance"`
	SupervisorName     string                  `json:"supervisorName"`
}
