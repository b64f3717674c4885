package extractor

import (
	"regexp"
	"strings"
)

// A recognizer scans one utterance for one field and reports the value it
// found. Recognizers are pure functions: no state, no network, no failure
// mode beyond "nothing found".
type recognizer func(text string) (string, bool)

// lexeme maps a surface form to the canonical value stored in the record.
// Entries are matched in order, so longer forms must come before their
// prefixes ("hypertension artérielle" before "hypertension").
type lexeme struct {
	surface   string
	canonical string
}

func lexiconRecognizer(entries []lexeme) recognizer {
	return func(text string) (string, bool) {
		lower := strings.ToLower(text)
		for _, e := range entries {
			if strings.Contains(lower, e.surface) {
				return e.canonical, true
			}
		}
		return "", false
	}
}

// labelRecognizer captures everything after an explicit "Label:" marker up to
// the end of the clause.
func labelRecognizer(re *regexp.Regexp) recognizer {
	return func(text string) (string, bool) {
		if m := re.FindStringSubmatch(text); m != nil {
			v := strings.TrimSpace(m[1])
			if v != "" {
				return v, true
			}
		}
		return "", false
	}
}

// firstOf tries recognizers in order and keeps the first hit.
func firstOf(recs ...recognizer) recognizer {
	return func(text string) (string, bool) {
		for _, r := range recs {
			if v, ok := r(text); ok {
				return v, true
			}
		}
		return "", false
	}
}

var (
	// Name after an explicit marker: "Patient Jean Dupont", "Nom: Sophie
	// Bernard", "Je m'appelle Marc Dumont". Two capitalized tokens minimum
	// so a bare "Patient Jean" does not swallow half a name.
	markedNamePattern = regexp.MustCompile(`(?:[Pp]atiente?|[Nn]om\s*:|[Jj]e m'appelle|[Dd]ossier patient|[Pp]t\s*:)\s*:?\s*([A-ZÀ-Þ][a-zà-ÿ'-]+(?:\s+[A-ZÀ-Þ][a-zà-ÿ'-]+)+)`)
	// Shorthand dictation often opens with the bare name: "Marc Dumont,
	// 62a, HTA, Enalapril 10mg/j".
	leadingNamePattern = regexp.MustCompile(`^\s*([A-ZÀ-Þ][a-zà-ÿ'-]+\s+[A-ZÀ-Þ][a-zà-ÿ'-]+)\s*,`)

	agePattern = regexp.MustCompile(`\b(\d{1,3})\s*a(?:ns?)?\b`)

	diagnosisLabelPattern  = regexp.MustCompile(`(?i)diagnostic\s*:\s*([^,.;\n]+)`)
	medicationLabelPattern = regexp.MustCompile(`(?i)(?:je vous prescris|m[ée]dicament\s*:)\s+(?:du |de la |de l')?([A-Za-zÀ-ÿ-]+)`)

	dosagePattern = regexp.MustCompile(`(?i)\b(\d+(?:[.,]\d+)?\s*(?:mg|g|ml|µg|ug|ui)(?:\s*/\s*j(?:our)?\b|\s+(?:une|deux|trois|quatre|\d+)\s+fois\s+par\s+jour)?)`)

	durationPattern = regexp.MustCompile(`(?i)\b((?:une|deux|trois|quatre|\d+)\s+(?:mois|jours?|semaines?))\b`)

	instructionsLabelPattern = regexp.MustCompile(`(?i)instructions?(?:\s+sp[ée]ciales?)?\s*:\s*([^.;\n]+)`)

	regionLabelPattern     = regexp.MustCompile(`(?i)r[ée]gion\s*(?:examin[ée]e)?\s*:\s*([^,.;\n]+)`)
	indicationLabelPattern = regexp.MustCompile(`(?i)indication\s*(?:clinique)?\s*:\s*([^.;\n]+)`)
	findingsLabelPattern   = regexp.MustCompile(`(?i)r[ée]sultats?\s*:\s*([^\n]+)`)
	findingsVerbPattern    = regexp.MustCompile(`(?i)on (?:observe|note|retrouve|met en [ée]vidence)\s+([^.\n]+)`)
	conclusionLabelPattern = regexp.MustCompile(`(?i)conclusion\s*:\s*([^\n]+)`)

	teslaPattern    = regexp.MustCompile(`(?i)\b(\d(?:[.,]\d)?)\s*t(?:esla)?\b`)
	sequencePattern = regexp.MustCompile(`\b(?:T1|T2|FLAIR|STIR|[Dd]iffusion)\b`)
)

var diagnosisLexicon = []lexeme{
	{"hypertension artérielle", "hypertension artérielle"},
	{"hypertension", "hypertension"},
	{"hta", "hypertension"},
	{"infection urinaire", "infection urinaire"},
	{"diabète de type 2", "diabète de type 2"},
	{"diabète", "diabète"},
	{"migraine", "migraine"},
	{"allergie saisonnière", "allergie saisonnière"},
	{"allergie", "allergie"},
	{"sinusite", "sinusite"},
	{"arthrose", "arthrose"},
	{"asthme", "asthme"},
	{"angine", "angine"},
	{"otite", "otite"},
	{"bronchite", "bronchite"},
	{"grippe", "grippe"},
	{"lombalgie", "lombalgie"},
}

var medicationLexicon = []lexeme{
	{"lisinopril", "Lisinopril"},
	{"norfloxacine", "Norfloxacine"},
	{"amoxicilline", "Amoxicilline"},
	{"azithromycine", "Azithromycine"},
	{"ibuprofène", "Ibuprofène"},
	{"ibuprofen", "Ibuprofène"},
	{"amlodipine", "Amlodipine"},
	{"enalapril", "Enalapril"},
	{"loratadine", "Loratadine"},
	{"paracétamol", "Paracétamol"},
	{"doliprane", "Doliprane"},
	{"metformine", "Metformine"},
	{"ventoline", "Ventoline"},
	{"oméprazole", "Oméprazole"},
	{"atorvastatine", "Atorvastatine"},
}

var instructionsLexicon = []lexeme{
	{"à jeun", "à jeun"},
	{"avec de la nourriture", "avec de la nourriture"},
	{"avant les repas", "avant les repas"},
	{"après les repas", "après les repas"},
	{"au coucher", "au coucher"},
	{"éviter l'alcool", "éviter l'alcool"},
}

var regionLexicon = []lexeme{
	{"rachis lombaire", "rachis lombaire"},
	{"rachis cervical", "rachis cervical"},
	{"abdomen et pelvis", "abdomen et pelvis"},
	{"abdomen", "abdomen"},
	{"thorax", "thorax"},
	{"pelvis", "pelvis"},
	{"genou droit", "genou droit"},
	{"genou gauche", "genou gauche"},
	{"genou", "genou"},
	{"épaule", "épaule"},
	{"crâne", "crâne"},
	{"cerveau", "cerveau"},
	{"thyroïde", "thyroïde"},
	{"foie", "foie"},
	{"reins", "reins"},
	{"hanche", "hanche"},
}

var contrastLexicon = []lexeme{
	{"avec injection d'iode", "avec injection d'iode"},
	{"avec injection de gadolinium", "avec injection de gadolinium"},
	{"sans injection", "sans injection"},
	{"avec injection", "avec injection"},
	{"sans produit de contraste", "sans produit de contraste"},
	{"avec produit de contraste", "avec produit de contraste"},
}

var probeLexicon = []lexeme{
	{"sonde convexe", "sonde convexe"},
	{"sonde linéaire", "sonde linéaire"},
	{"sonde endocavitaire", "sonde endocavitaire"},
	{"sonde cardiaque", "sonde cardiaque"},
}

func recognizeName(text string) (string, bool) {
	if m := markedNamePattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if m := leadingNamePattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

func recognizeAge(text string) (string, bool) {
	if m := agePattern.FindStringSubmatch(text); m != nil {
		return m[1] + " ans", true
	}
	return "", false
}

func recognizeDosage(text string) (string, bool) {
	if m := dosagePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

func recognizeDuration(text string) (string, bool) {
	if m := durationPattern.FindStringSubmatch(text); m != nil {
		return strings.ToLower(strings.TrimSpace(m[1])), true
	}
	return "", false
}

func recognizeFieldStrength(text string) (string, bool) {
	if m := teslaPattern.FindStringSubmatch(text); m != nil {
		return strings.ReplaceAll(m[1], ",", ".") + "T", true
	}
	return "", false
}

func recognizeSequences(text string) (string, bool) {
	found := sequencePattern.FindAllString(text, -1)
	if len(found) == 0 {
		return "", false
	}
	seen := make(map[string]bool, len(found))
	var out []string
	for _, s := range found {
		s = strings.ToUpper(s[:1]) + s[1:]
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return strings.Join(out, ", "), true
}

// recognizers is the deterministic tier, keyed by field key. Fields without
// an entry can only be populated by the enrichment tier or an explicit edit.
var recognizers = map[string]recognizer{
	"patientName": recognizeName,
	"patientAge":  recognizeAge,
	"diagnosis": firstOf(
		labelRecognizer(diagnosisLabelPattern),
		lexiconRecognizer(diagnosisLexicon),
	),
	"medication": firstOf(
		labelRecognizer(medicationLabelPattern),
		lexiconRecognizer(medicationLexicon),
	),
	"dosage":   recognizeDosage,
	"duration": recognizeDuration,
	"specialInstructions": firstOf(
		labelRecognizer(instructionsLabelPattern),
		lexiconRecognizer(instructionsLexicon),
	),
	"examRegion": firstOf(
		labelRecognizer(regionLabelPattern),
		lexiconRecognizer(regionLexicon),
	),
	"clinicalIndication": labelRecognizer(indicationLabelPattern),
	"contrastAgent":      lexiconRecognizer(contrastLexicon),
	"findings": firstOf(
		labelRecognizer(findingsLabelPattern),
		labelRecognizer(findingsVerbPattern),
	),
	"conclusion":            labelRecognizer(conclusionLabelPattern),
	"magneticFieldStrength": recognizeFieldStrength,
	"sequences":             recognizeSequences,
	"probeType":             lexiconRecognizer(probeLexicon),
}
