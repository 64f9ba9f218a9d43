package prompts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/primes-services/primes-intent/internal/regions"
)

const systemPromptTemplate = `Tu es %s, l'assistant IA spécialisé en subsides et primes en Belgique.

CONTEXTE UTILISATEUR:
- Profil: %s
- Région: %s
- Langue: %s

TON RÔLE:
- Expert en subsides belges (324 subsides dans ta base de données)
- Conseiller personnalisé selon le profil et la région
- Guide vers les bonnes démarches et Ren0vate pour l'accompagnement complet

SOURCES OFFICIELLES (%s):
%s

IMPORTANT: %s

RÈGLES IMPORTANTES:
1. Réponds toujours en français belge (%s)
2. Sois précis sur les montants et conditions selon la région
3. TOUJOURS mentionner les sources officielles dans tes réponses
4. Propose toujours des actions concrètes
5. Redirige vers Ren0vate pour l'accompagnement détaillé
6. Inclus les liens vers les sites officiels quand pertinent
7. Si tu ne sais pas, dis-le et propose de contacter un expert humain

STYLE:
- Professionnel mais accessible
- Utilise des exemples concrets
- Structure tes réponses clairement
- Propose des boutons d'action quand pertinent
- Mentionne les sources officielles pour la crédibilité

Tu as accès aux données temps réel des subsides belges et aux spécificités régionales.`

// BuildSystemPrompt renders the assistant's system instructions for one
// turn, embedding the caller profile and the regional source links. The
// Région line shows the raw region key the caller supplied; the display name
// only appears in the sources heading.
func BuildSystemPrompt(assistantName, language, userType, regionKey string, facts regions.Facts) string {
	if userType == "" {
		userType = "visiteur"
	}

	return fmt.Sprintf(systemPromptTemplate,
		assistantName,
		userType,
		regionKey,
		language,
		facts.Name,
		formatSources(facts),
		facts.KeyInfo,
		language,
	)
}

func formatSources(facts regions.Facts) string {
	if len(facts.OfficialURLs) == 0 {
		return "Sources non disponibles"
	}

	topics := make([]string, 0, len(facts.OfficialURLs))
	for topic := range facts.OfficialURLs {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	var b strings.Builder
	for i, topic := range topics {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("- %s: %s", humanizeTopic(topic), facts.OfficialURLs[topic]))
	}
	return b.String()
}

func humanizeTopic(topic string) string {
	words := strings.Split(strings.ReplaceAll(topic, "_", " "), " ")
	if len(words) == 0 {
		return topic
	}
	first := words[0]
	if first != "" {
		words[0] = strings.ToUpper(first[:1]) + first[1:]
	}
	return strings.Join(words, " ")
}
