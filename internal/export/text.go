// Package export renders survey documents as plain German text with
// checkbox markers, suitable for pasting into documents or emails.
package export

import (
	"fmt"
	"strings"

	"github.com/tbruckner/ce-intake/internal/core"
)

const (
	checked   = "☒"
	unchecked = "☐"
)

func line(ok bool, text string) string {
	if ok {
		return checked + " " + text
	}
	return unchecked + " " + text
}

func has(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// RoleSurveyText renders the role survey as checkbox text.
func RoleSurveyText(s *core.RoleSurvey) string {
	otherSuffix := ""
	if s.OtherText != "" {
		otherSuffix = fmt.Sprintf(" (%s)", s.OtherText)
	}

	lines := []string{
		"=== Rolle (Punkt 1) ===",
		"A. Allgemeine Markt- & Lieferkettenfragen",
		line(has(s.TargetMarkets, "EU"), "Zielmarkt(e): EU/EWR"),
		line(has(s.TargetMarkets, "USA"), "Zielmarkt(e): USA"),
		line(has(s.TargetMarkets, "China"), "Zielmarkt(e): China"),
		line(has(s.TargetMarkets, "UK"), "Zielmarkt(e): UK"),
		line(has(s.TargetMarkets, "Other"), "Zielmarkt(e): Andere"+otherSuffix),
		line(s.FirstPlacing == "our_company", "A2. Erstes Inverkehrbringen: unser Unternehmen"),
		line(s.FirstPlacing == "affiliate", "A2. Erstes Inverkehrbringen: verbundenes Unternehmen"),
		line(s.FirstPlacing == "external_partner", "A2. Erstes Inverkehrbringen: externer Partner"),
		line(s.FirstPlacing == "unclear", "A2. Erstes Inverkehrbringen: unklar"),
		"",
		"B. Produktbezogene Verantwortung",
		line(s.ProductDevelopment == "inhouse", "B1. Produktentwicklung: inhouse"),
		line(s.ProductDevelopment == "partial", "B1. Produktentwicklung: teilweise"),
		line(s.ProductDevelopment == "external_to_spec", "B1. Produktentwicklung: extern nach Spezifikation"),
		line(s.ProductDevelopment == "external_no_spec", "B1. Produktentwicklung: extern ohne Spezifikation"),
		line(s.IntendedUseDefined == "our_company", "B2. Bestimmungsgemäße Verwendung: unser Unternehmen"),
		line(s.IntendedUseDefined == "joint", "B2. Bestimmungsgemäße Verwendung: gemeinsam"),
		line(s.IntendedUseDefined == "external", "B2. Bestimmungsgemäße Verwendung: extern"),
		line(s.IntendedUseDefined == "unclear", "B2. Bestimmungsgemäße Verwendung: unklar"),
		"",
		"C. Inverkehrbringen & Bereitstellung",
		line(s.Branding == "our_brand", "C1. Verkaufsname/Marke: unsere Marke"),
		line(s.Branding == "other_brand", "C1. Verkaufsname/Marke: andere Marke"),
		line(s.Branding == "neutral", "C1. Verkaufsname/Marke: neutral"),
		line(s.ConformityResponsibility == "our_company", "C2. Konformitätsverantwortung: unser Unternehmen"),
		line(s.ConformityResponsibility == "partner", "C2. Konformitätsverantwortung: Partner"),
		line(s.ConformityResponsibility == "not_defined", "C2. Konformitätsverantwortung: nicht definiert"),
		line(s.TechDocsHeldBy == "our_company", "C3. Technische Unterlagen: unser Unternehmen"),
		line(s.TechDocsHeldBy == "partner", "C3. Technische Unterlagen: Partner"),
		line(s.TechDocsHeldBy == "unclear", "C3. Technische Unterlagen: unklar"),
		"",
		"D. Import & Vertrieb",
		line(s.ImportFromThirdCountry == "no", "D1. Import aus Drittstaat: nein"),
		line(s.ImportFromThirdCountry == "yes_by_us", "D1. Import aus Drittstaat: ja, durch uns"),
		line(s.ImportFromThirdCountry == "yes_by_others", "D1. Import aus Drittstaat: ja, durch andere"),
		line(s.ImporterOnDocs == "our_company", "D2. Importeur in Dokumenten: unser Unternehmen"),
		line(s.ImporterOnDocs == "external", "D2. Importeur in Dokumenten: extern"),
		line(s.ImporterOnDocs == "unclear", "D2. Importeur in Dokumenten: unklar"),
		line(s.ImporterOnDocs == "not_applicable", "D2. Importeur: nicht anwendbar (kein Import)"),
		line(s.Distribution == "direct_to_end_users", "D3. Vertrieb: direkt an Endverbraucher"),
		line(s.Distribution == "to_distributors", "D3. Vertrieb: an Händler/Distributoren"),
		line(s.Distribution == "internal_only", "D3. Vertrieb: nur intern"),
		"",
		"E. Modifikation & Anpassung",
		line(has(s.ModifiedAfterReceipt, "no") || len(s.ModifiedAfterReceipt) == 0, "E1. Veränderungen nach Erhalt: nein"),
		line(has(s.ModifiedAfterReceipt, "mechanical"), "E1. Veränderungen: mechanisch"),
		line(has(s.ModifiedAfterReceipt, "electrical"), "E1. Veränderungen: elektrisch"),
		line(has(s.ModifiedAfterReceipt, "software"), "E1. Veränderungen: Software"),
		line(has(s.ModifiedAfterReceipt, "configuration"), "E1. Veränderungen: Konfiguration"),
		line(s.ModAffectsConformity == "no", "E2. Einfluss auf Konformität: nein"),
		line(s.ModAffectsConformity == "yes", "E2. Einfluss auf Konformität: ja"),
		line(s.ModAffectsConformity == "unclear", "E2. Einfluss auf Konformität: unklar"),
		line(s.ModAffectsConformity == "not_applicable", "E2. Einfluss: nicht anwendbar (keine Änderungen)"),
		"",
		"F. Kennzeichnung & Marktüberwachung",
		line(s.MarksAppliedBy == "our_company", "F1. Kennzeichnungen (CE etc.) anbringen: unser Unternehmen"),
		line(s.MarksAppliedBy == "manufacturer", "F1. Kennzeichnungen: Hersteller"),
		line(s.MarksAppliedBy == "importer", "F1. Kennzeichnungen: Importeur"),
		line(s.MarketSurveillanceHandler == "our_company", "F2. Marktüberwachung: unser Unternehmen"),
		line(s.MarketSurveillanceHandler == "partner", "F2. Marktüberwachung: Partner"),
		line(s.MarketSurveillanceHandler == "not_defined", "F2. Marktüberwachung: nicht definiert"),
		"",
		"G. Software & digitale Aspekte",
		line(s.SoftwareIncluded == "no", "G1. Enthält Software: nein"),
		line(s.SoftwareIncluded == "embedded", "G1. Enthält Software: eingebettet"),
		line(s.SoftwareIncluded == "standalone", "G1. Enthält Software: standalone"),
		line(s.SoftwareIncluded == "cloud_saas", "G1. Enthält Software: Cloud/SaaS"),
		line(s.SoftwareMaintainedBy == "our_company", "G2. Softwarepflege: unser Unternehmen"),
		line(s.SoftwareMaintainedBy == "service_provider", "G2. Softwarepflege: Dienstleister"),
		line(s.SoftwareMaintainedBy == "customer", "G2. Softwarepflege: Kunde"),
	}
	return strings.Join(lines, "\n")
}

// categoryLabels maps category keys to their German labels, in render order.
var categoryLabels = []struct {
	key   string
	label string
}{
	{"machine", "Maschine"},
	{"electricalEquipment", "Elektrische Ausrüstung"},
	{"electronicDevice", "Elektronikgerät"},
	{"medicalDevice", "Medizinprodukt"},
	{"pressureEquipment", "Druckgerät"},
	{"radioEquipment", "Funkanlage"},
	{"constructionProduct", "Bauprodukt"},
	{"toy", "Spielzeug"},
	{"ppe", "PSA"},
	{"softwareDigital", "Software/digital"},
	{"combinationSystem", "Kombinationssystem"},
	{"other", "Sonstige"},
}

func categoryValue(c core.ProductCategory, key string) bool {
	switch key {
	case "machine":
		return c.Machine
	case "electricalEquipment":
		return c.ElectricalEquipment
	case "electronicDevice":
		return c.ElectronicDevice
	case "medicalDevice":
		return c.MedicalDevice
	case "pressureEquipment":
		return c.PressureEquipment
	case "radioEquipment":
		return c.RadioEquipment
	case "constructionProduct":
		return c.ConstructionProduct
	case "toy":
		return c.Toy
	case "ppe":
		return c.PPE
	case "softwareDigital":
		return c.SoftwareDigital
	case "combinationSystem":
		return c.CombinationSystem
	case "other":
		return c.Other
	default:
		return false
	}
}

// ProductSurveyText renders the product survey as checkbox text.
func ProductSurveyText(s *core.ProductSurvey) string {
	productName := s.ProductName
	if productName == "" {
		productName = "(nicht angegeben)"
	}
	mainPurpose := s.MainPurpose
	if mainPurpose == "" {
		mainPurpose = "(nicht angegeben)"
	}

	lines := []string{
		"=== Produkt (Punkt 2) ===",
		"A. Produktidentifikation",
		"A1. Produktbezeichnung: " + productName,
		"",
	}

	for _, cat := range categoryLabels {
		label := "A2. Kategorie: " + cat.label
		if cat.key == "other" && s.Category.OtherText != "" {
			label += fmt.Sprintf(" (%s)", s.Category.OtherText)
		}
		lines = append(lines, line(categoryValue(s.Category, cat.key), label))
	}

	lines = append(lines,
		"",
		"B. Physisch & technisch",
		line(s.Tangible, "B1. Physisch greifbar: ja"),
		line(!s.Tangible, "B1. Physisch greifbar: nein"),
		line(s.MovingParts == "no", "B2. Bewegliche Teile: nein"),
		line(s.MovingParts == "manual", "B2. Bewegliche Teile: manuell"),
		line(s.MovingParts == "motorized", "B2. Bewegliche Teile: motorisiert"),
		line(s.MovingParts == "automatic_autonomous", "B2. Bewegliche Teile: automatisch/autonom"),
	)
	for _, e := range energyFormValues {
		lines = append(lines, line(has(s.EnergyForms, e), "B3. Energieform: "+e))
	}
	lines = append(lines,
		line(s.MaxElectricalRatings == "le_50vac_75vdc", "B4. Elektrische Kenndaten: ≤50V AC/75V DC"),
		line(s.MaxElectricalRatings == "gt_50vac_75vdc", "B4. Elektrische Kenndaten: >50V AC/75V DC"),
		line(s.MaxElectricalRatings == "not_applicable", "B4. Elektrische Kenndaten: nicht anwendbar"),
		"",
		"C. Zweck & Verwendung",
		"C1. Hauptzweck: "+mainPurpose,
		line(s.HumanInteraction == "no", "C2. Bedienung/Tragen: nein"),
		line(s.HumanInteraction == "indirect", "C2. Bedienung/Tragen: indirekt"),
		line(s.HumanInteraction == "direct", "C2. Bedienung/Tragen: direkt"),
		line(s.HumanInteraction == "worn_on_body", "C2. Bedienung/Tragen: am Körper getragen"),
	)
	for _, u := range targetUserValues {
		lines = append(lines, line(has(s.TargetUsers, u), "C3. Zielnutzer: "+u))
	}

	lines = append(lines, "", "D. Einsatzumgebung")
	for _, e := range environmentValues {
		lines = append(lines, line(has(s.UseEnvironments, e), "D1. Einsatzort: "+e))
	}
	for _, c := range conditionValues {
		lines = append(lines, line(has(s.SpecialConditions, c), "D2. Bedingungen: "+c))
	}

	wirelessOther := "E2. Funk: andere"
	if s.WirelessOtherText != "" {
		wirelessOther += fmt.Sprintf(" (%s)", s.WirelessOtherText)
	}
	lines = append(lines,
		"",
		"E. Funktionen & Technologie",
		line(s.Software == "no", "E1. Software: nein"),
		line(s.Software == "embedded", "E1. Software: eingebettet"),
		line(s.Software == "standalone", "E1. Software: standalone"),
		line(s.Software == "cloud_saas", "E1. Software: Cloud/SaaS"),
		line(s.Wireless == "no", "E2. Funk: nein"),
		line(s.Wireless == "wifi", "E2. Funk: WLAN"),
		line(s.Wireless == "bluetooth", "E2. Funk: Bluetooth"),
		line(s.Wireless == "cellular", "E2. Funk: Mobilfunk"),
		line(s.Wireless == "other", wirelessOther),
		line(s.AI == "no", "E3. KI: nein"),
		line(s.AI == "supportive", "E3. KI: unterstützend"),
		line(s.AI == "safety_relevant", "E3. KI: sicherheitsrelevant"),
		line(s.AI == "autonomous", "E3. KI: autonom"),
		"",
		"F. Bereitstellungsform",
		line(s.SupplyForm == "single_device", "F1. Bereitstellung: Einzelgerät"),
		line(s.SupplyForm == "assembly", "F1. Bereitstellung: Baugruppe"),
		line(s.SupplyForm == "safety_component", "F1. Bereitstellung: Sicherheitsbauteil"),
		line(s.SupplyForm == "accessory", "F1. Bereitstellung: Zubehör"),
		line(s.SupplyForm == "spare_part", "F1. Bereitstellung: Ersatzteil"),
		line(s.SupplyForm == "system_plant", "F1. Bereitstellung: System/Anlage"),
		line(s.SupplyForm == "subsystem_for_integration", "F1. Bereitstellung: Subsystem zur Integration"),
		line(s.ReadyToUse == "yes", "F2. Sofort einsatzbereit: ja"),
		line(s.ReadyToUse == "installation_required", "F2. Sofort einsatzbereit: Installation nötig"),
		line(s.ReadyToUse == "integration_required", "F2. Sofort einsatzbereit: Integration nötig"),
		line(s.PartOfBiggerSystem == "no", "F3. Teil größeres System: nein"),
		line(s.PartOfBiggerSystem == "yes_open", "F3. Teil größeres System: ja, offen"),
		line(s.PartOfBiggerSystem == "yes_closed", "F3. Teil größeres System: ja, geschlossen"),
	)

	targetOther := "G1. Zielmarkt: Andere"
	if s.TargetOtherText != "" {
		targetOther += fmt.Sprintf(" (%s)", s.TargetOtherText)
	}
	lines = append(lines,
		"",
		"G. Markt & Fokus",
		line(has(s.TargetMarkets, "EU"), "G1. Zielmarkt: EU/EWR"),
		line(has(s.TargetMarkets, "USA"), "G1. Zielmarkt: USA"),
		line(has(s.TargetMarkets, "China"), "G1. Zielmarkt: China"),
		line(has(s.TargetMarkets, "UK"), "G1. Zielmarkt: UK"),
		line(has(s.TargetMarkets, "Other"), targetOther),
	)
	for _, m := range supplyModeValues {
		lines = append(lines, line(has(s.SupplyMode, m), "G2. Bereitstellungsart: "+m))
	}

	capacity := "(nicht angegeben)"
	if s.BatteryCapacityKwh != nil {
		capacity = formatNumber(*s.BatteryCapacityKwh)
	}
	batteryCategory := ""
	if s.BatteryCategory != nil {
		batteryCategory = *s.BatteryCategory
	}
	lines = append(lines,
		"",
		"H. Batterie (EU 2023/1542)",
		"H1. Kapazität (kWh): "+capacity,
		line(batteryCategory == "portable", "H2. Batterietyp: tragbar"),
		line(batteryCategory == "industrial", "H2. Batterietyp: Industriebatterie"),
		line(batteryCategory == "ev", "H2. Batterietyp: EV"),
		line(batteryCategory == "lmt", "H2. Batterietyp: LMT"),
		line(batteryCategory == "other", "H2. Batterietyp: sonstige"),
		line(s.BatteryContainsCobalt != nil && *s.BatteryContainsCobalt, "H3. Enthält Kobalt"),
		line(s.BatteryContainsNickel != nil && *s.BatteryContainsNickel, "H4. Enthält Nickel"),
		line(s.BatteryContainsNaturalGraphite != nil && *s.BatteryContainsNaturalGraphite, "H5. Enthält Naturgraphit"),
	)

	return strings.Join(lines, "\n")
}

// formatNumber prints whole-number capacities without a decimal point.
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

// Vocabulary orderings for the multi-select renderings.
var (
	energyFormValues  = []string{"electrical", "mechanical", "pneumatic", "hydraulic", "thermal", "chemical", "radiation", "none"}
	targetUserValues  = []string{"consumer", "commercial", "industry", "trained_staff", "patients", "children"}
	environmentValues = []string{"household", "office", "industry", "outdoor", "medical", "public_space", "atex"}
	conditionValues   = []string{"humidity", "dust", "heat_cold", "chemicals", "vibration", "none"}
	supplyModeValues  = []string{"sale", "rental", "leasing", "free", "internal_use", "digital_supply"}
)
