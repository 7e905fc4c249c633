package core

import (
	"fmt"
	"strings"

	"github.com/tbruckner/ce-intake/internal/schema"
)

// RoleSurvey captures who performs which regulatory function in the supply
// chain. Field keys mirror the intake questionnaire numbering and are
// referenced by the analysis instructions, so the JSON names are stable.
type RoleSurvey struct {
	TargetMarkets []string `json:"A1_targetMarkets"`
	OtherText     string   `json:"A1_otherText,omitempty"`
	FirstPlacing  string   `json:"A2_firstPlacing"`

	ProductDevelopment string `json:"B1_productDevelopment"`
	IntendedUseDefined string `json:"B2_intendedUseDefinedBy"`

	Branding                 string `json:"C1_branding"`
	ConformityResponsibility string `json:"C2_conformityResponsibility"`
	TechDocsHeldBy           string `json:"C3_techDocsHeldBy"`

	ImportFromThirdCountry string `json:"D1_importFromThirdCountry"`
	ImporterOnDocs         string `json:"D2_importerOnDocs"`
	Distribution           string `json:"D3_distribution"`

	ModifiedAfterReceipt []string `json:"E1_modifiedAfterReceipt"`
	ModAffectsConformity string   `json:"E2_mod_affects_conformity"`

	MarksAppliedBy            string `json:"F1_marksAppliedBy"`
	MarketSurveillanceHandler string `json:"F2_marketSurveillanceHandledBy"`

	SoftwareIncluded     string `json:"G1_softwareIncluded"`
	SoftwareMaintainedBy string `json:"G2_softwareMaintainedBy"`
}

// ProductCategory is the multi-select product classification block.
type ProductCategory struct {
	Machine             bool   `json:"machine"`
	ElectricalEquipment bool   `json:"electricalEquipment"`
	ElectronicDevice    bool   `json:"electronicDevice"`
	MedicalDevice       bool   `json:"medicalDevice"`
	PressureEquipment   bool   `json:"pressureEquipment"`
	RadioEquipment      bool   `json:"radioEquipment"`
	ConstructionProduct bool   `json:"constructionProduct"`
	Toy                 bool   `json:"toy"`
	PPE                 bool   `json:"ppe"`
	SoftwareDigital     bool   `json:"softwareDigital"`
	CombinationSystem   bool   `json:"combinationSystem"`
	Other               bool   `json:"other"`
	OtherText           string `json:"otherText,omitempty"`
}

// ProductSurvey captures the technical characteristics of the product.
// The optional H block feeds the battery regulation tailoring; pointer
// fields distinguish "not answered" from an explicit answer.
type ProductSurvey struct {
	ProductName string          `json:"A1_productName"`
	Category    ProductCategory `json:"A2_category"`

	Tangible             bool     `json:"B1_tangible"`
	MovingParts          string   `json:"B2_movingParts"`
	EnergyForms          []string `json:"B3_energyForms"`
	MaxElectricalRatings string   `json:"B4_maxElectricalRatings"`

	MainPurpose      string   `json:"C1_mainPurpose"`
	HumanInteraction string   `json:"C2_humanInteraction"`
	TargetUsers      []string `json:"C3_targetUsers"`

	UseEnvironments   []string `json:"D1_useEnvironments"`
	SpecialConditions []string `json:"D2_specialConditions"`

	Software          string `json:"E1_software"`
	Wireless          string `json:"E2_wireless"`
	WirelessOtherText string `json:"E2_wirelessOtherText,omitempty"`
	AI                string `json:"E3_ai"`

	SupplyForm         string `json:"F1_supplyForm"`
	ReadyToUse         string `json:"F2_readyToUse"`
	PartOfBiggerSystem string `json:"F3_partOfBiggerSystem"`

	TargetMarkets   []string `json:"G1_targetMarkets"`
	TargetOtherText string   `json:"G1_otherText,omitempty"`
	SupplyMode      []string `json:"G2_supplyMode"`

	BatteryCapacityKwh             *float64 `json:"H1_batteryCapacityKwh,omitempty"`
	BatteryCategory                *string  `json:"H2_batteryCategory,omitempty"`
	BatteryContainsCobalt          *bool    `json:"H3_batteryContainsCobalt,omitempty"`
	BatteryContainsNickel          *bool    `json:"H4_batteryContainsNickel,omitempty"`
	BatteryContainsNaturalGraphite *bool    `json:"H5_batteryContainsNaturalGraphite,omitempty"`
}

// Answer vocabularies for the survey fields.
var (
	firstPlacingValues   = []string{"our_company", "affiliate", "external_partner", "unclear"}
	productDevValues     = []string{"inhouse", "partial", "external_to_spec", "external_no_spec"}
	intendedUseValues    = []string{"our_company", "joint", "external", "unclear"}
	brandingValues       = []string{"our_brand", "other_brand", "neutral"}
	conformityRespValues = []string{"our_company", "partner", "not_defined"}
	techDocsValues       = []string{"our_company", "partner", "unclear"}
	importValues         = []string{"no", "yes_by_us", "yes_by_others"}
	importerOnDocsValues = []string{"our_company", "external", "unclear", "not_applicable"}
	distributionValues   = []string{"direct_to_end_users", "to_distributors", "internal_only"}
	modificationValues   = []string{"no", "mechanical", "electrical", "software", "configuration"}
	modConformityValues  = []string{"no", "yes", "unclear", "not_applicable"}
	marksValues          = []string{"our_company", "manufacturer", "importer"}
	surveillanceValues   = []string{"our_company", "partner", "not_defined"}
	softwareValues       = []string{"no", "embedded", "standalone", "cloud_saas"}
	softwareMaintValues  = []string{"our_company", "service_provider", "customer"}

	movingPartsValues     = []string{"no", "manual", "motorized", "automatic_autonomous"}
	energyFormValues      = []string{"electrical", "mechanical", "pneumatic", "hydraulic", "thermal", "chemical", "radiation", "none"}
	ratingsValues         = []string{"le_50vac_75vdc", "gt_50vac_75vdc", "not_applicable"}
	interactionValues     = []string{"no", "indirect", "direct", "worn_on_body"}
	targetUserValues      = []string{"consumer", "commercial", "industry", "trained_staff", "patients", "children"}
	environmentValues     = []string{"household", "office", "industry", "outdoor", "medical", "public_space", "atex"}
	conditionValues       = []string{"humidity", "dust", "heat_cold", "chemicals", "vibration", "none"}
	wirelessValues        = []string{"no", "wifi", "bluetooth", "cellular", "other"}
	aiValues              = []string{"no", "supportive", "safety_relevant", "autonomous"}
	supplyFormValues      = []string{"single_device", "assembly", "safety_component", "accessory", "spare_part", "system_plant", "subsystem_for_integration"}
	readyToUseValues      = []string{"yes", "installation_required", "integration_required"}
	biggerSystemValues    = []string{"no", "yes_open", "yes_closed"}
	supplyModeValues      = []string{"sale", "rental", "leasing", "free", "internal_use", "digital_supply"}
	batteryCategoryValues = []string{"portable", "industrial", "ev", "lmt", "other"}
)

// Validate checks every closed-enum field and multi-select uniqueness.
func (s *RoleSurvey) Validate() error {
	if err := validateSet("A1_targetMarkets", s.TargetMarkets, schema.Markets); err != nil {
		return err
	}
	checks := []struct {
		field   string
		value   string
		allowed []string
	}{
		{"A2_firstPlacing", s.FirstPlacing, firstPlacingValues},
		{"B1_productDevelopment", s.ProductDevelopment, productDevValues},
		{"B2_intendedUseDefinedBy", s.IntendedUseDefined, intendedUseValues},
		{"C1_branding", s.Branding, brandingValues},
		{"C2_conformityResponsibility", s.ConformityResponsibility, conformityRespValues},
		{"C3_techDocsHeldBy", s.TechDocsHeldBy, techDocsValues},
		{"D1_importFromThirdCountry", s.ImportFromThirdCountry, importValues},
		{"D2_importerOnDocs", s.ImporterOnDocs, importerOnDocsValues},
		{"D3_distribution", s.Distribution, distributionValues},
		{"E2_mod_affects_conformity", s.ModAffectsConformity, modConformityValues},
		{"F1_marksAppliedBy", s.MarksAppliedBy, marksValues},
		{"F2_marketSurveillanceHandledBy", s.MarketSurveillanceHandler, surveillanceValues},
		{"G1_softwareIncluded", s.SoftwareIncluded, softwareValues},
		{"G2_softwareMaintainedBy", s.SoftwareMaintainedBy, softwareMaintValues},
	}
	for _, c := range checks {
		if err := validateOneOf(c.field, c.value, c.allowed); err != nil {
			return err
		}
	}
	return validateSet("E1_modifiedAfterReceipt", s.ModifiedAfterReceipt, modificationValues)
}

// Validate checks every closed-enum field and multi-select uniqueness.
func (s *ProductSurvey) Validate() error {
	checks := []struct {
		field   string
		value   string
		allowed []string
	}{
		{"B2_movingParts", s.MovingParts, movingPartsValues},
		{"B4_maxElectricalRatings", s.MaxElectricalRatings, ratingsValues},
		{"C2_humanInteraction", s.HumanInteraction, interactionValues},
		{"E1_software", s.Software, softwareValues},
		{"E2_wireless", s.Wireless, wirelessValues},
		{"E3_ai", s.AI, aiValues},
		{"F1_supplyForm", s.SupplyForm, supplyFormValues},
		{"F2_readyToUse", s.ReadyToUse, readyToUseValues},
		{"F3_partOfBiggerSystem", s.PartOfBiggerSystem, biggerSystemValues},
	}
	for _, c := range checks {
		if err := validateOneOf(c.field, c.value, c.allowed); err != nil {
			return err
		}
	}

	sets := []struct {
		field   string
		values  []string
		allowed []string
	}{
		{"B3_energyForms", s.EnergyForms, energyFormValues},
		{"C3_targetUsers", s.TargetUsers, targetUserValues},
		{"D1_useEnvironments", s.UseEnvironments, environmentValues},
		{"D2_specialConditions", s.SpecialConditions, conditionValues},
		{"G1_targetMarkets", s.TargetMarkets, schema.Markets},
		{"G2_supplyMode", s.SupplyMode, supplyModeValues},
	}
	for _, c := range sets {
		if err := validateSet(c.field, c.values, c.allowed); err != nil {
			return err
		}
	}

	if s.BatteryCategory != nil {
		if err := validateOneOf("H2_batteryCategory", *s.BatteryCategory, batteryCategoryValues); err != nil {
			return err
		}
	}
	return nil
}

func validateOneOf(field, value string, allowed []string) error {
	for _, v := range allowed {
		if v == value {
			return nil
		}
	}
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("value %q not in [%s]", value, strings.Join(allowed, ", ")),
	}
}

func validateSet(field string, values, allowed []string) error {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if err := validateOneOf(field, v, allowed); err != nil {
			return err
		}
		if seen[v] {
			return &ValidationError{Field: field, Message: fmt.Sprintf("duplicate value %q", v)}
		}
		seen[v] = true
	}
	return nil
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// DefaultRoleSurvey returns the blank questionnaire state.
func DefaultRoleSurvey() *RoleSurvey {
	return &RoleSurvey{
		TargetMarkets:             []string{},
		FirstPlacing:              "unclear",
		ProductDevelopment:        "external_no_spec",
		IntendedUseDefined:        "unclear",
		Branding:                  "neutral",
		ConformityResponsibility:  "not_defined",
		TechDocsHeldBy:            "unclear",
		ImportFromThirdCountry:    "no",
		ImporterOnDocs:            "not_applicable",
		Distribution:              "to_distributors",
		ModifiedAfterReceipt:      []string{},
		ModAffectsConformity:      "not_applicable",
		MarksAppliedBy:            "manufacturer",
		MarketSurveillanceHandler: "not_defined",
		SoftwareIncluded:          "no",
		SoftwareMaintainedBy:      "customer",
	}
}

// ExampleRoleSurvey returns the prefilled example: an EU manufacturer that
// develops, brands, and places the product itself.
func ExampleRoleSurvey() *RoleSurvey {
	return &RoleSurvey{
		TargetMarkets:             []string{"EU"},
		FirstPlacing:              "our_company",
		ProductDevelopment:        "inhouse",
		IntendedUseDefined:        "our_company",
		Branding:                  "our_brand",
		ConformityResponsibility:  "our_company",
		TechDocsHeldBy:            "our_company",
		ImportFromThirdCountry:    "no",
		ImporterOnDocs:            "not_applicable",
		Distribution:              "to_distributors",
		ModifiedAfterReceipt:      []string{},
		ModAffectsConformity:      "not_applicable",
		MarksAppliedBy:            "our_company",
		MarketSurveillanceHandler: "our_company",
		SoftwareIncluded:          "embedded",
		SoftwareMaintainedBy:      "our_company",
	}
}

// DefaultProductSurvey returns the blank questionnaire state.
func DefaultProductSurvey() *ProductSurvey {
	return &ProductSurvey{
		Category:             ProductCategory{},
		Tangible:             true,
		MovingParts:          "no",
		EnergyForms:          []string{},
		MaxElectricalRatings: "not_applicable",
		HumanInteraction:     "indirect",
		TargetUsers:          []string{},
		UseEnvironments:      []string{},
		SpecialConditions:    []string{},
		Software:             "no",
		Wireless:             "no",
		AI:                   "no",
		SupplyForm:           "single_device",
		ReadyToUse:           "yes",
		PartOfBiggerSystem:   "no",
		TargetMarkets:        []string{},
		SupplyMode:           []string{},
	}
}

// ExampleProductSurvey returns the prefilled example: a modular 400V Li-Ion
// high-voltage battery subsystem for industrial energy storage.
func ExampleProductSurvey() *ProductSurvey {
	capacity := 50.0
	category := "industrial"
	cobalt := true
	nickel := true
	graphite := false
	return &ProductSurvey{
		ProductName: "Modulare Li-Ion Hochvoltbatterie (400V) – Subsystem zur Integration in industrielle Energiespeicher",
		Category: ProductCategory{
			ElectricalEquipment: true,
			ElectronicDevice:    true,
		},
		Tangible:             true,
		MovingParts:          "no",
		EnergyForms:          []string{"electrical", "chemical"},
		MaxElectricalRatings: "gt_50vac_75vdc",
		MainPurpose:          "Energiespeicherung für industrielle Anwendungen; Integration in größere Speichersysteme.",
		HumanInteraction:     "indirect",
		TargetUsers:          []string{"industry", "trained_staff"},
		UseEnvironments:      []string{"industry", "outdoor"},
		SpecialConditions:    []string{"none"},
		Software:             "embedded",
		Wireless:             "no",
		AI:                   "no",
		SupplyForm:           "subsystem_for_integration",
		ReadyToUse:           "integration_required",
		PartOfBiggerSystem:   "yes_open",
		TargetMarkets:        []string{"EU"},
		SupplyMode:           []string{"sale"},

		BatteryCapacityKwh:             &capacity,
		BatteryCategory:                &category,
		BatteryContainsCobalt:          &cobalt,
		BatteryContainsNickel:          &nickel,
		BatteryContainsNaturalGraphite: &graphite,
	}
}
