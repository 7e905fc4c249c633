package core

import (
	"fmt"
	"time"
)

// nowFunc is swapped in tests.
var nowFunc = time.Now

// DefaultDisclaimer is attached when the model returns none.
const DefaultDisclaimer = "Diese Auswertung wurde automatisch erstellt und ersetzt keine Rechtsberatung. Alle Angaben ohne Gewähr."

const jurisdictionFocusEU = "EU"

// Identity of the plan synthesized from the legacy battery result.
const (
	batteryRegulationID    = "eu-2023-1542"
	batteryRegulationTitle = "Verordnung (EU) 2023/1542 (Batterien)"
)

// Floors for a stored legacy battery plan.
const (
	legacyMinSections        = 6
	legacyMinItemsPerSection = 3
)

// Normalize brings a decoded result into canonical form, in order: meta
// defaulting, byMarket deduplication, generation upgrade. Idempotent. A nil
// result is a hard error; missing optional fields are not.
func Normalize(res *AnalysisResult, requestedModel string) (*AnalysisResult, error) {
	if res == nil {
		return nil, &AnalysisError{Kind: ErrorKindEmptyResult, Message: "no analysis result to normalize"}
	}

	if res.Meta.CreatedAt == "" {
		res.Meta.CreatedAt = nowFunc().UTC().Format(time.RFC3339)
	}
	// The requested model is authoritative; the model's self-report is not.
	res.Meta.Model = requestedModel
	res.Meta.JurisdictionFocus = jurisdictionFocusEU
	if res.Meta.Disclaimer == "" {
		res.Meta.Disclaimer = DefaultDisclaimer
	}

	res.RoleDetermination.ByMarket = dedupeByMarket(res.RoleDetermination.ByMarket)

	if err := upgradePlans(res); err != nil {
		return nil, err
	}
	return res, nil
}

// dedupeByMarket groups entries by market in first-appearance order. Role
// lists are concatenated; missingInfo and contradictions are merged as
// order-preserving sets.
func dedupeByMarket(entries []MarketRoles) []MarketRoles {
	if entries == nil {
		return []MarketRoles{}
	}

	index := make(map[string]int, len(entries))
	merged := make([]MarketRoles, 0, len(entries))

	for _, entry := range entries {
		i, seen := index[entry.Market]
		if !seen {
			index[entry.Market] = len(merged)
			merged = append(merged, MarketRoles{
				Market:         entry.Market,
				Roles:          append([]RoleAssignment(nil), entry.Roles...),
				MissingInfo:    append([]string(nil), entry.MissingInfo...),
				Contradictions: append([]string(nil), entry.Contradictions...),
			})
			continue
		}
		m := &merged[i]
		m.Roles = append(m.Roles, entry.Roles...)
		m.MissingInfo = unionStrings(m.MissingInfo, entry.MissingInfo)
		m.Contradictions = unionStrings(m.Contradictions, entry.Contradictions)
	}
	return merged
}

// unionStrings merges b into a, keeping first-occurrence order and dropping
// duplicates.
func unionStrings(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			if seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// upgradePlans moves a legacy single-plan result into the current
// compliancePlans shape. A populated compliancePlans list wins; otherwise
// one plan is synthesized from the legacy battery plan with item ids
// preserved, so stored checklist overlays keep resolving.
func upgradePlans(res *AnalysisResult) error {
	if len(res.CompliancePlans) > 0 {
		return nil
	}
	res.CompliancePlans = []CompliancePlan{}

	if res.LegacyPlan == nil || res.LegacyPlan.BatteryRegulation == nil {
		return nil
	}
	legacy := res.LegacyPlan.BatteryRegulation

	if err := checkLegacyFloors(legacy); err != nil {
		return err
	}

	plan := CompliancePlan{
		RegulationID:        batteryRegulationID,
		RegulationTitle:     batteryRegulationTitle,
		Jurisdiction:        jurisdictionFocusEU,
		Applicable:          true,
		ScopeSummary:        []string{},
		Checklist:           legacy.Checklist,
		OutTailoredSections: legacy.OutTailoredSections,
	}
	if legacy.Applicable != nil {
		plan.Applicable = *legacy.Applicable
	}
	if sc := legacy.ScopeClassification; sc != nil {
		if sc.BatteryType != "" {
			plan.ScopeSummary = append(plan.ScopeSummary, "Einstufung: "+sc.BatteryType)
		}
		plan.ScopeSummary = append(plan.ScopeSummary, sc.Rationale...)
	}
	if plan.OutTailoredSections == nil {
		plan.OutTailoredSections = []OutTailoredSection{}
	}

	res.CompliancePlans = []CompliancePlan{plan}
	return nil
}

// checkLegacyFloors enforces the cardinality the legacy generation promised:
// at least six checklist sections with three items each.
func checkLegacyFloors(legacy *LegacyBatteryPlan) error {
	if len(legacy.Checklist) < legacyMinSections {
		return &AnalysisError{
			Kind:    ErrorKindValidation,
			Message: fmt.Sprintf("legacy battery plan has %d checklist sections, need at least %d", len(legacy.Checklist), legacyMinSections),
		}
	}
	for _, section := range legacy.Checklist {
		if len(section.Items) < legacyMinItemsPerSection {
			return &AnalysisError{
				Kind:    ErrorKindValidation,
				Message: fmt.Sprintf("legacy checklist section %q has %d items, need at least %d", section.SectionCode, len(section.Items), legacyMinItemsPerSection),
			}
		}
	}
	return nil
}
