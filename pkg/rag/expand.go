package rag

import "strings"

// Synonym groups for common clinic intents. Expansion feeds SQL generation
// and vector retrieval only; the expanded string is never shown to users.
var (
	pricingTriggers  = []string{"price", "cost", "fee", "how much", "charge", "insurance", "billing", "consult", "initial"}
	pricingSynonyms  = []string{"price", "prices", "cost", "fee", "fees", "charge", "charges"}
	consultTriggers  = []string{"consult", "initial", "first visit", "assessment"}
	consultSynonyms  = []string{"consultation", "initial consultation", "first visit", "assessment"}
	chineseTriggers  = []string{"費用", "價錢", "收費", "多少錢", "幾錢", "諮詢", "初診", "首次就診", "評估"}
	chineseExpansion = []string{"費用", "價錢", "收費", "諮詢", "初診", "首次就診", "評估"}
)

// ExpandQuery appends bilingual synonyms for pricing and consultation
// questions to improve recall. De-duplicates while preserving order and
// returns the question unchanged when nothing triggers.
func ExpandQuery(question string) string {
	if question == "" {
		return question
	}

	lower := strings.ToLower(question)
	var expansions []string

	if containsAny(lower, pricingTriggers) {
		expansions = append(expansions, pricingSynonyms...)
	}
	if containsAny(lower, consultTriggers) {
		expansions = append(expansions, consultSynonyms...)
	}
	if containsAny(question, chineseTriggers) {
		expansions = append(expansions, chineseExpansion...)
	}

	expansions = dedupe(expansions)
	if len(expansions) == 0 {
		return question
	}
	return question + " | " + strings.Join(expansions, " | ")
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
