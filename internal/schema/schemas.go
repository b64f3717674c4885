package schema

import (
	"regexp"

	"vocalis/internal/domain"
)

// Format rules are deliberately loose: they reject values that cannot be what
// the field claims to be, not values that are merely unusual. A wrong-format
// value is surfaced as "present but invalid", never as missing.
var (
	agePattern    = regexp.MustCompile(`\d`)
	dosagePattern = regexp.MustCompile(`(?i)\d+\s*(mg|g|ml|µg|ug|ui|%)`)
	teslaPattern  = regexp.MustCompile(`(?i)^\s*\d+([.,]\d+)?\s*t(esla)?\s*$`)
)

func builtinSchemas() []*domain.DocumentSchema {
	return []*domain.DocumentSchema{
		{
			Type:  domain.DocumentTypePrescription,
			Title: "Ordonnance médicale",
			Fields: []domain.FieldDefinition{
				{Key: "patientName", Label: "Nom du patient", Tier: domain.TierCritical,
					Examples: []string{"Jean Dupont", "Sophie Bernard"}},
				{Key: "patientAge", Label: "Âge du patient", Tier: domain.TierCritical,
					Format: agePattern, FormatHint: "un âge en chiffres, par exemple « 45 ans »",
					Examples: []string{"45 ans", "34 ans"}},
				{Key: "diagnosis", Label: "Diagnostic", Tier: domain.TierCritical,
					Examples: []string{"hypertension", "infection urinaire"}},
				{Key: "medication", Label: "Médicament", Tier: domain.TierCritical,
					Examples: []string{"Lisinopril", "Amoxicilline"}},
				{Key: "dosage", Label: "Posologie", Tier: domain.TierCritical,
					Format: dosagePattern, FormatHint: "une dose chiffrée avec unité, par exemple « 10mg une fois par jour »",
					Examples: []string{"10mg une fois par jour", "500mg deux fois par jour"}},
				{Key: "duration", Label: "Durée du traitement", Tier: domain.TierCritical,
					Examples: []string{"3 mois", "une semaine"}},
				{Key: "specialInstructions", Label: "Instructions spéciales", Tier: domain.TierCritical,
					Examples: []string{"à jeun", "avec de la nourriture"}},
			},
		},
		{
			Type:  domain.DocumentTypeScanReport,
			Title: "Compte rendu de scanner",
			Fields: []domain.FieldDefinition{
				{Key: "patientName", Label: "Nom du patient", Tier: domain.TierCritical},
				{Key: "patientAge", Label: "Âge du patient", Tier: domain.TierCritical,
					Format: agePattern, FormatHint: "un âge en chiffres, par exemple « 45 ans »"},
				{Key: "examRegion", Label: "Région examinée", Tier: domain.TierCritical,
					Examples: []string{"thorax", "abdomen et pelvis"}},
				{Key: "clinicalIndication", Label: "Indication clinique", Tier: domain.TierCritical,
					Examples: []string{"douleur abdominale aiguë"}},
				{Key: "contrastAgent", Label: "Produit de contraste", Tier: domain.TierHigh,
					Examples: []string{"avec injection d'iode", "sans injection"}},
				{Key: "findings", Label: "Résultats", Tier: domain.TierCritical},
				{Key: "conclusion", Label: "Conclusion", Tier: domain.TierCritical},
			},
		},
		{
			Type:  domain.DocumentTypeMRIReport,
			Title: "Compte rendu d'IRM",
			Fields: []domain.FieldDefinition{
				{Key: "patientName", Label: "Nom du patient", Tier: domain.TierCritical},
				{Key: "patientAge", Label: "Âge du patient", Tier: domain.TierCritical,
					Format: agePattern, FormatHint: "un âge en chiffres, par exemple « 45 ans »"},
				{Key: "examRegion", Label: "Région examinée", Tier: domain.TierCritical,
					Examples: []string{"rachis lombaire", "genou droit"}},
				{Key: "clinicalIndication", Label: "Indication clinique", Tier: domain.TierHigh},
				{Key: "magneticFieldStrength", Label: "Champ magnétique", Tier: domain.TierMedium,
					Format: teslaPattern, FormatHint: "une intensité en tesla, par exemple « 1.5T » ou « 3T »",
					Examples: []string{"1.5T", "3T"}},
				{Key: "sequences", Label: "Séquences réalisées", Tier: domain.TierHigh,
					Examples: []string{"T1, T2, STIR"}},
				{Key: "findings", Label: "Résultats", Tier: domain.TierCritical},
				{Key: "conclusion", Label: "Conclusion", Tier: domain.TierCritical},
			},
		},
		{
			Type:  domain.DocumentTypeUltrasoundReport,
			Title: "Compte rendu d'échographie",
			Fields: []domain.FieldDefinition{
				{Key: "patientName", Label: "Nom du patient", Tier: domain.TierCritical},
				{Key: "patientAge", Label: "Âge du patient", Tier: domain.TierCritical,
					Format: agePattern, FormatHint: "un âge en chiffres, par exemple « 45 ans »"},
				{Key: "examRegion", Label: "Région examinée", Tier: domain.TierCritical,
					Examples: []string{"abdomen", "thyroïde"}},
				{Key: "probeType", Label: "Type de sonde", Tier: domain.TierHigh,
					Examples: []string{"sonde convexe", "sonde linéaire"}},
				{Key: "clinicalIndication", Label: "Indication clinique", Tier: domain.TierHigh},
				{Key: "findings", Label: "Résultats", Tier: domain.TierCritical},
				{Key: "conclusion", Label: "Conclusion", Tier: domain.TierCritical},
			},
		},
	}
}
