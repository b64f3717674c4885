package enricher

import (
	"fmt"
	"strings"

	"vocalis/internal/port"
)

// BuildExtractionPrompt returns the field-extraction prompt for one utterance.
// The contract it states is enforced downstream: a flat JSON object, exactly
// the listed keys, empty string for anything the utterance does not say.
func BuildExtractionPrompt(input port.EnrichInput) string {
	var fields strings.Builder
	for _, key := range input.FieldKeys {
		fields.WriteString(fmt.Sprintf("  %q: \"\",  // %s\n", key, input.Labels[key]))
	}

	return fmt.Sprintf(`Tu es un assistant d'extraction de données médicales. Un professionnel de santé dicte un document de type « %s ». Analyse UNIQUEMENT le message ci-dessous et extrais les informations qu'il contient.

Message :
%s

Réponds UNIQUEMENT avec un objet JSON valide, sans markdown, sans balises de code, sans explication. L'objet doit être plat et contenir exactement ces clés :

{
%s}

Règles :
- Si une information n'est pas mentionnée dans le message, utilise la chaîne vide "".
- N'invente JAMAIS de valeur. N'utilise jamais "none", "null" ou "N/A".
- Recopie les valeurs telles que dictées, en français.`,
		input.DocumentType, input.Text, fields.String())
}
