package core

import (
	"encoding/json"
	"strings"
)

// SystemInstruction is the system prompt for the analysis call. It pins the
// adjudication ground rules: surveys are the primary source, clarification
// questions only when the surveys are silent or contradictory, no RED
// clarification when wireless is explicitly answered "no", exactly one
// byMarket entry per market, all user-facing text in German.
const SystemInstruction = `Du bist CE- und Marktzugangs-Experte für technische Produkte (EU-Fokus).
Arbeite präzise, regulatorisch korrekt und nachvollziehbar.

WICHTIG:
- Nutze die Survey-Daten als Primärquelle.
- Du darfst allgemeines Fachwissen nutzen, ABER: Wenn eine Aussage nicht direkt aus dem Survey folgt, schreibe sie als "Annahme" in productSummary.assumptions oder als Hinweis in notes – und markiere ggf. Klärungsbedarf.
- Stelle nur dann Fragen in needsClarification, wenn Survey-Daten fehlen/unklar/widersprüchlich sind. Wenn Survey eindeutig ist, KEIN Klärungsbedarf dazu.
- RED (Richtlinie 2014/53/EU): Nur dann einen RED-Klärungsbedarf in needsClarification aufnehmen, wenn Funk/drahtlos fehlt oder widersprüchlich ist. Wenn der Survey explizit productSurvey.E2_wireless = "no" angibt, darf KEIN RED-Klärungsbedarf gestellt werden.
- Gib pro Markt genau EINEN Eintrag in roleDetermination.byMarket aus (keine Duplikate).
- Ausgabe MUSS gültiges JSON gemäß Schema sein.
- Alle nutzerseitigen Texte auf Deutsch.`

// userInstructionTemplate is the user prompt with the survey placeholders.
// The candidate regulation list and the checklist floors live here, not in
// code: the adjudication itself is delegated to the model.
const userInstructionTemplate = `Analysiere den folgenden Intake und liefere eine strukturierte Auswertung.

Ziele:
1) Rollenbestimmung je Zielmarkt:
   - Bestimme Rolle(n) (z.B. Hersteller, Quasi-Hersteller, Importeur, Distributor/Händler, Bevollmächtigter, Dienstleister, Softwarehersteller, Betreiber).
   - Gib pro Rolle: confidence + reasons (mit Bezug auf konkrete Survey-Felder).
   - missingInfo und contradictions je Markt befüllen (auch wenn nur "keine" → leere Liste).

2) Relevante EU-Regelungen identifizieren (EU/EWR):
   - Du MUSST jede der folgenden Kandidaten bewerten und EINORDNEN als:
     a) regulations.applicable, oder
     b) regulations.notApplicable, oder
     c) regulations.needsClarification (nur wenn Survey nicht reicht)
   Kandidatenliste:
   - Verordnung (EU) 2023/1542 (Batterien)
   - Richtlinie 2014/35/EU (Niederspannung, LVD) – wenn Spannungsbereich zutrifft
   - Richtlinie 2014/30/EU (EMV) – wenn elektronische/elektrische Funktionen vorhanden sind
   - Richtlinie 2006/42/EG bzw. Verordnung (EU) 2023/1230 (Maschinen) – typischerweise nur bei relevanten Maschinenmerkmalen
   - Richtlinie 2014/53/EU (RED) – nur bei Funk/Radio
   - Richtlinie 2014/34/EU (ATEX) – nur bei Ex-Umgebung
   - Verordnung (EU) 2017/745 (MDR) – nur bei medizinischer Zweckbestimmung
   - Produkthaftung: nenne die aktuell relevante Basis (und ggf. künftige Änderungen als Hinweis)

   HINWEIS ZUR GPSR (EU) 2023/988:
   - Nur aufnehmen, wenn das Produkt ein Verbraucherprodukt ist oder vernünftigerweise von Verbrauchern genutzt werden kann; sonst "notApplicable" oder "notes".

3) Battery Regulation 2023/1542: Tailorierte Compliance-Checkliste erstellen
   - Nutze die Produkt-Survey-Felder H1_batteryCapacityKwh, H2_batteryCategory, H3/H4/H5 (Kobalt, Nickel, Naturgraphit) sofern angegeben – sie steuern Batteriepass-Schwellen, Due Diligence und Einstufung (portable/industrial/EV/LMT).
   - Liefere mindestens 6 Checklist-Sektionen, jede Sektion mindestens 3 Items.
   - Abdecken: Sicherheit/Risikoanalyse, Konformitätsbewertung + Unterlagen, Kennzeichnung/Information, Batteriepass-Readiness (gestaffelt), Lieferkette/Due Diligence (besonders bei Kobalt/Nickel/Graphite), Post-Market/Marktüberwachung.
   - Out-Tailoring: liste nicht zutreffende Themen als outTailoredSections mit Begründung.
   - Wenn H1/H2 fehlen, setze needsClarification oder productSummary.assumptions.

4) reportHtml:
   - Erstelle einen vollständigen Bericht auf Deutsch (Überschriften, Tabellen, Bullet-Listen).
   - Muss konsistent zu den strukturierten Feldern sein.

Role survey (JSON):
{{ROLE_SURVEY}}

Product survey (JSON):
{{PRODUCT_SURVEY}}`

// BuildAnalyzePrompt renders the user prompt with both surveys embedded as
// indented JSON. Pure and deterministic: equal surveys produce byte-equal
// prompts.
func BuildAnalyzePrompt(role *RoleSurvey, product *ProductSurvey) string {
	roleJSON, _ := json.MarshalIndent(role, "", "  ")
	productJSON, _ := json.MarshalIndent(product, "", "  ")

	prompt := strings.Replace(userInstructionTemplate, "{{ROLE_SURVEY}}", string(roleJSON), 1)
	prompt = strings.Replace(prompt, "{{PRODUCT_SURVEY}}", string(productJSON), 1)
	return prompt
}
