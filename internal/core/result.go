package core

// Meta carries provenance for one analysis run.
type Meta struct {
	CreatedAt         string `json:"createdAt"`
	Model             string `json:"model"`
	JurisdictionFocus string `json:"jurisdictionFocus"`
	Disclaimer        string `json:"disclaimer"`
}

// RoleAssignment is one determined role with its confidence and reasoning.
type RoleAssignment struct {
	Role       string   `json:"role"`
	Confidence string   `json:"confidence"`
	Reasons    []string `json:"reasons"`
}

// MarketRoles holds the role determination for a single target market.
type MarketRoles struct {
	Market         string           `json:"market"`
	Roles          []RoleAssignment `json:"roles"`
	MissingInfo    []string         `json:"missingInfo"`
	Contradictions []string         `json:"contradictions"`
}

// RoleDetermination groups per-market role findings. After normalization
// each market appears exactly once.
type RoleDetermination struct {
	ByMarket []MarketRoles `json:"byMarket"`
}

// ProductSummary condenses the product survey from the model's view.
type ProductSummary struct {
	ProductName        string   `json:"productName"`
	KeyClassifications []string `json:"keyClassifications"`
	KeyRiskDrivers     []string `json:"keyRiskDrivers"`
	Assumptions        []string `json:"assumptions"`
}

// Source is a citation attached to an applicable regulation.
type Source struct {
	Title   string   `json:"title"`
	URL     string   `json:"url"`
	UsedFor []string `json:"usedFor"`
}

// ApplicableRegulation is one regulation judged to apply to the product.
type ApplicableRegulation struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Type                string   `json:"type"`
	Jurisdiction        string   `json:"jurisdiction"`
	WhyApplicable       []string `json:"whyApplicable"`
	Notes               []string `json:"notes"`
	Confidence          string   `json:"confidence"`
	Sources             []Source `json:"sources"`
	HarmonisedStandards []string `json:"harmonisedStandards"`
}

// NotApplicableRegulation is one candidate ruled out with reasons.
type NotApplicableRegulation struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Jurisdiction     string   `json:"jurisdiction"`
	WhyNotApplicable []string `json:"whyNotApplicable"`
}

// ClarificationItem is an open question the surveys could not answer.
type ClarificationItem struct {
	Topic        string `json:"topic"`
	Question     string `json:"question"`
	WhyItMatters string `json:"whyItMatters"`
}

// Regulations is the full adjudication over the candidate list.
type Regulations struct {
	Applicable         []ApplicableRegulation    `json:"applicable"`
	NotApplicable      []NotApplicableRegulation `json:"notApplicable"`
	NeedsClarification []ClarificationItem       `json:"needsClarification"`
}

// Tailoring records whether a checklist item applies to this product.
type Tailoring struct {
	Applicable      bool    `json:"applicable"`
	TailoringReason *string `json:"tailoringReason"`
}

// ChecklistItem is one compliance requirement with evidence guidance.
type ChecklistItem struct {
	ID                 string    `json:"id"`
	Requirement        string    `json:"requirement"`
	EvidenceExamples   []string  `json:"evidenceExamples"`
	OwnerRoleSuggested string    `json:"ownerRoleSuggested"`
	StatusDefault      string    `json:"statusDefault"`
	Tailoring          Tailoring `json:"tailoring"`
}

// ChecklistSection groups checklist items under a coded heading.
type ChecklistSection struct {
	SectionCode  string          `json:"sectionCode"`
	SectionTitle string          `json:"sectionTitle"`
	Items        []ChecklistItem `json:"items"`
}

// OutTailoredSection names a checklist topic excluded with a reason.
type OutTailoredSection struct {
	Reference string `json:"reference"`
	Reason    string `json:"reason"`
}

// CompliancePlan is a per-regulation tailored checklist.
type CompliancePlan struct {
	RegulationID        string               `json:"regulationId"`
	RegulationTitle     string               `json:"regulationTitle"`
	Jurisdiction        string               `json:"jurisdiction"`
	Applicable          bool                 `json:"applicable"`
	ScopeSummary        []string             `json:"scopeSummary"`
	Checklist           []ChecklistSection   `json:"checklist"`
	OutTailoredSections []OutTailoredSection `json:"outTailoredSections"`
}

// ScopeClassification is the legacy battery-type classification.
type ScopeClassification struct {
	BatteryType string   `json:"batteryType,omitempty"`
	Rationale   []string `json:"rationale,omitempty"`
}

// LegacyBatteryPlan is the battery-regulation plan from the previous result
// generation. Only decoded from stored results, never generated.
type LegacyBatteryPlan struct {
	Applicable          *bool                `json:"applicable,omitempty"`
	ScopeClassification *ScopeClassification `json:"scopeClassification,omitempty"`
	Checklist           []ChecklistSection   `json:"checklist,omitempty"`
	OutTailoredSections []OutTailoredSection `json:"outTailoredSections,omitempty"`
}

// LegacySummaryEntry is a legacy next-steps note for one regulation.
type LegacySummaryEntry struct {
	RegulationID string   `json:"regulationId"`
	WhatToDoNext []string `json:"whatToDoNext"`
}

// LegacyCompliancePlan is the deprecated single-plan result shape.
type LegacyCompliancePlan struct {
	BatteryRegulation       *LegacyBatteryPlan   `json:"batteryRegulation_2023_1542,omitempty"`
	OtherRegulationsSummary []LegacySummaryEntry `json:"otherRegulationsSummary,omitempty"`
}

// AnalysisResult is the full analysis output. LegacyPlan is populated only
// when decoding results stored before compliancePlans existed; Normalize
// upgrades it into CompliancePlans.
type AnalysisResult struct {
	Meta              Meta                  `json:"meta"`
	RoleDetermination RoleDetermination     `json:"roleDetermination"`
	ProductSummary    ProductSummary        `json:"productSummary"`
	Regulations       Regulations           `json:"regulations"`
	CompliancePlans   []CompliancePlan      `json:"compliancePlans"`
	LegacyPlan        *LegacyCompliancePlan `json:"compliancePlan,omitempty"`
	ReportHTML        string                `json:"reportHtml"`
}

// ChecklistStatus is the user-editable state overlaid on a checklist item.
type ChecklistStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// Checklist status values.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

// ChecklistKey builds the overlay key for a checklist item. Current-format
// plans key by regulation and item; legacy items key by bare item id.
func ChecklistKey(regulationID, itemID string) string {
	if regulationID == "" {
		return itemID
	}
	return regulationID + "/" + itemID
}
