package answer

import (
	"fmt"
	"strings"

	"github.com/dossierlab/dossier/core"
)

const systemPrompt = `You are a helpful assistant answering questions about events and people.
ONLY use the information provided in the CONTEXT blocks below (do not hallucinate).
If the answer is not present in the context, say you don't have enough information.
Keep answers concise and list facts (do not invent details).`

const userPromptFormat = `CONTEXT:
%s

QUESTION:
%s

INSTRUCTIONS:
- Answer using only facts available in the CONTEXT.
- If multiple matching items exist, present a short bulleted list with identifying fields (e.g., Event Id, Subject, Date, Location).
- For people, show Name, Profession, and Id if available.`

// BuildContext renders retrieved matches into numbered CONTEXT blocks.
// Blocks appear in match order (best first) and carry the provenance
// metadata so the model can cite which row a fact came from.
func BuildContext(matches []*core.Match) string {
	blocks := make([]string, len(matches))
	for i, m := range matches {
		blocks[i] = fmt.Sprintf("--- CONTEXT %d (table=%s, row_id=%s) ---\n%s",
			i+1, m.Document.Metadata[core.MetaTable], m.Document.Metadata[core.MetaRowID],
			m.Document.Text)
	}
	return strings.Join(blocks, "\n\n")
}

// buildUserPrompt combines the context blocks and the question.
func buildUserPrompt(contextText, question string) string {
	return fmt.Sprintf(userPromptFormat, contextText, question)
}
