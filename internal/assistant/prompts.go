package assistant

import (
	"fmt"
	"strings"
)

// Prompt builders. Notes are embedded verbatim; prompts that need a
// machine-readable answer spell the JSON contract out and ask for bare JSON
// with no surrounding prose.

func promotePrompt(body, elaboration string) string {
	var b strings.Builder
	b.WriteString("You are helping maintain a Zettelkasten note collection.\n")
	b.WriteString("Convert the fleeting note below into a permanent atomic note.\n\n")
	b.WriteString("Fleeting note:\n")
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n")
	if strings.TrimSpace(elaboration) != "" {
		b.WriteString("\nAdditional context from the author:\n")
		b.WriteString(strings.TrimSpace(elaboration))
		b.WriteString("\n")
	}
	b.WriteString("\nRespond with a single JSON object:\n")
	b.WriteString(`{"title": "...", "content": "...", "keywords": ["..."], "connections": ["..."]}` + "\n")
	b.WriteString("- title: one declarative sentence naming the core idea\n")
	b.WriteString("- content: the idea restated so it stands on its own, two to four short paragraphs\n")
	b.WriteString("- keywords: three to five lowercase keywords\n")
	b.WriteString("- connections: titles of related concepts worth linking to\n")
	b.WriteString("Output the JSON object and nothing else.\n")
	return b.String()
}

func explanationPrompt(activeTitle, activeBody, candidateTitle, candidateBody string) string {
	var b strings.Builder
	b.WriteString("Two notes from the same collection:\n\n")
	fmt.Fprintf(&b, "Note A (%s):\n%s\n\n", activeTitle, excerpt(activeBody, 400))
	fmt.Fprintf(&b, "Note B (%s):\n%s\n\n", candidateTitle, excerpt(candidateBody, 400))
	b.WriteString("In one sentence, explain how these notes relate and why linking them would be useful.\n")
	return b.String()
}

func structurePrompt(topic string, notes []noteContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a structure note on the topic %q from the notes below.\n", topic)
	b.WriteString("A structure note is a Markdown overview that arranges the ideas into sections,\n")
	b.WriteString("links each note with [[Title]] wikilink syntax, and adds brief connecting prose.\n\n")
	for _, n := range notes {
		fmt.Fprintf(&b, "## %s\n%s\n\n", n.Title, strings.TrimSpace(n.Body))
	}
	b.WriteString("Output the structure note body only, without front-matter.\n")
	return b.String()
}

func topicsPrompt(notes []noteContext) string {
	var b strings.Builder
	b.WriteString("Below are permanent notes from a Zettelkasten. Identify writing topics that\n")
	b.WriteString("are ready to be drafted because several notes already support them.\n\n")
	for _, n := range notes {
		fmt.Fprintf(&b, "- %s: %s\n", n.Title, n.Body)
	}
	b.WriteString("\nRespond with a JSON array of topic objects:\n")
	b.WriteString(`[{"topic": "...", "noteCount": 3, "readiness": "...", "angle": "..."}]` + "\n")
	b.WriteString("- topic: the working title\n")
	b.WriteString("- noteCount: how many of the notes above support it\n")
	b.WriteString("- readiness: ready, developing, or early\n")
	b.WriteString("- angle: the angle that would make the piece distinctive\n")
	b.WriteString("Output the JSON array and nothing else.\n")
	return b.String()
}

func outlinePrompt(topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Draft a working outline for a piece of writing on %q.\n", topic)
	b.WriteString("Use Markdown headings for sections, with one line under each heading on what it covers.\n")
	b.WriteString("Aim for five to eight sections, from motivation through conclusion.\n")
	return b.String()
}
