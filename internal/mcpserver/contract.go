package mcpserver

// NoteFormatContract describes the canonical Markdown note format that
// LLM consumers should follow when creating notes or reading them back.
const NoteFormatContract = `# Ansuz Note Format Contract

Every Markdown note stored in Ansuz follows this structure.

## Structure

` + "```" + `markdown
---
type: permanent                     # REQUIRED - fleeting | permanent | outline | writing-project
created: 2026-02-14T12:00:00Z       # OPTIONAL - RFC 3339 timestamp
keywords: memory, learning          # OPTIONAL - comma-separated, NOT a YAML list
---

# Human-readable title

Body text in standard Markdown.

Use [[wikilinks]] to reference other notes (without .md extension).
Use [[target|alias]] for display text that differs from the target.
` + "```" + `

## Rules

1. **The header block is line-based, not YAML.** Each line between the
   ` + "`" + `---` + "`" + ` fences is split at the FIRST colon into a key and a plain string
   value. Lists are comma-separated strings; nothing is nested.
2. **` + "`" + `type` + "`" + ` drives the workflows.** Fleeting notes are raw captures waiting
   for promotion; permanent notes are the long-lived knowledge base; outline
   and writing-project notes live in the structure folder.
3. **Fleeting notes carry ` + "`" + `processed: false` + "`" + ` until promoted.** Promotion
   flips the flag to ` + "`" + `true` + "`" + ` and replaces the placeholder comment with a
   back-reference to the permanent note. Do not edit either by hand.
4. **The title is the first ` + "`" + `# ` + "`" + ` heading** (or the ` + "`" + `title` + "`" + ` header field
   when present). File names double as wikilink targets.
5. **Wikilinks** use double brackets: ` + "`" + `[[other-note]]` + "`" + `. The target is the
   filename stem (no ` + "`" + `.md` + "`" + ` extension).
6. **Folders**: ` + "`" + `Fleeting Notes/` + "`" + `, ` + "`" + `Permanent Notes/` + "`" + ` and
   ` + "`" + `Structure Notes/` + "`" + ` by default (configurable in settings). File paths end
   with ` + "`" + `.md` + "`" + ` and use forward slashes.
7. **Encoding** is UTF-8 with a trailing newline.

## Assets & Images

- Upload assets via the ` + "`" + `upload_asset` + "`" + ` tool. It returns a ` + "`" + `markdownImage` + "`" + ` field ready to paste into the note body.
- Assets are stored in the shared ` + "`" + `attachments/` + "`" + ` directory (flat, no sub-folders).
- Reference in notes using the absolute path: ` + "`" + `![description](/attachments/filename.png)` + "`" + `
- Supported formats: png, jpg, jpeg, gif, webp, svg, pdf.

## Example

` + "```" + `markdown
---
type: permanent
created: 2026-02-14T12:00:00Z
keywords: memory, spaced-repetition
---

# Spacing beats cramming

Distributed practice outperforms massed practice for long-term retention.

![Forgetting curve](/attachments/forgetting-curve.png)

## Connections

- [[Retrieval practice]]
- [[Desirable difficulties]]

Source: [[Fleeting-1700000000000]]
` + "```" + `
`
