package schema

// Closed vocabularies shared by the generation schema, the validator, and
// the survey documents.
var (
	Markets = []string{"EU", "USA", "China", "UK", "Other"}

	Roles = []string{
		"Hersteller",
		"Quasi-Hersteller",
		"Importeur",
		"Distributor/Händler",
		"Bevollmächtigter",
		"Dienstleister",
		"Softwarehersteller",
		"Betreiber",
		"Unklar",
	}

	ConfidenceLevels = []string{"high", "medium", "low"}

	RegulationTypes = []string{"Verordnung", "Richtlinie", "Gesetz", "Leitlinie"}
)

// AnalysisResult returns the constraint tree for the current result
// generation. Cardinality floors (three applicable and three not-applicable
// regulations, at least one byMarket entry) are hard requirements.
func AnalysisResult() *Node {
	return Object(
		Prop("meta", Object(
			Prop("createdAt", String()),
			Prop("model", String()),
			Prop("jurisdictionFocus", Const("EU")),
			Prop("disclaimer", String()),
		)),
		Prop("roleDetermination", Object(
			Prop("byMarket", Array(Object(
				Prop("market", Enum(Markets...)),
				Prop("roles", Array(Object(
					Prop("role", Enum(Roles...)),
					Prop("confidence", Enum(ConfidenceLevels...)),
					Prop("reasons", Array(String())),
				))),
				Prop("missingInfo", Array(String())),
				Prop("contradictions", Array(String())),
			)).Min(1)),
		)),
		Prop("productSummary", Object(
			Prop("productName", String()),
			Prop("keyClassifications", Array(String())),
			Prop("keyRiskDrivers", Array(String())),
			Prop("assumptions", Array(String())),
		)),
		Prop("regulations", Object(
			Prop("applicable", Array(Object(
				Prop("id", String()),
				Prop("title", String()),
				Prop("type", Enum(RegulationTypes...)),
				Prop("jurisdiction", Const("EU")),
				Prop("whyApplicable", Array(String())),
				Prop("notes", Array(String())),
				Prop("confidence", Enum(ConfidenceLevels...)),
				Prop("sources", Array(Object(
					Prop("title", String()),
					Prop("url", String()),
					Prop("usedFor", Array(String())),
				))),
				Prop("harmonisedStandards", Array(String())),
			)).Min(3)),
			Prop("notApplicable", Array(Object(
				Prop("id", String()),
				Prop("title", String()),
				Prop("jurisdiction", Const("EU")),
				Prop("whyNotApplicable", Array(String())),
			)).Min(3)),
			Prop("needsClarification", Array(Object(
				Prop("topic", String()),
				Prop("question", String()),
				Prop("whyItMatters", String()),
			))),
		)),
		Prop("compliancePlans", Array(compliancePlan())),
		Prop("reportHtml", String().Describe("Vollständiger Bericht auf Deutsch, konsistent zu den strukturierten Feldern.")),
	)
}

func compliancePlan() *Node {
	return Object(
		Prop("regulationId", String()),
		Prop("regulationTitle", String()),
		Prop("jurisdiction", Const("EU")),
		Prop("applicable", Boolean()),
		Prop("scopeSummary", Array(String())),
		Prop("checklist", Array(Object(
			Prop("sectionCode", String()),
			Prop("sectionTitle", String()),
			Prop("items", Array(Object(
				Prop("id", String()),
				Prop("requirement", String()),
				Prop("evidenceExamples", Array(String())),
				Prop("ownerRoleSuggested", String()),
				Prop("statusDefault", Const("todo")),
				Prop("tailoring", Object(
					Prop("applicable", Boolean()),
					Prop("tailoringReason", String().OrNull()),
				)),
			)).Min(1)),
		))),
		Prop("outTailoredSections", Array(Object(
			Prop("reference", String()),
			Prop("reason", String()),
		))),
	)
}
