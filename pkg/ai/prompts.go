package ai

// ExtractionPrompt instructs the model to pull investigation evidence out of
// a source text chunk as typed nodes and directed, weighted edges. Used as the
// system prompt; the chunk text is sent as the user message.
// Expects one format argument: the source identifier.
const ExtractionPrompt = `
# Task Context
You are an analyst assistant that extracts investigation evidence from source documents. You will be given a chunk of a source document and must identify the events, actors, resources and decisions it describes, along with the causal or supportive relations between them.

# Background Data
Source identifier: %s

# Detailed Task Description & Rules
- Extract every concrete piece of evidence as a node with:
  * "id": a short, stable, lowercase snake_case identifier derived from the label
  * "type": one of "event", "actor", "resource", "decision"
  * "label": a short human-readable name
  * "date": the date the evidence refers to in YYYY-MM-DD format, or "" if the text gives none
  * "confidence": 0-100, how reliable this piece of evidence is based on how the text reports it (direct observation high, hearsay or speculation low)
- Extract a directed edge for every relation the text states or strongly implies:
  * "from" and "to": node ids from this chunk
  * "relation": a short verb phrase, e.g. "triggered", "supplied", "approved", "preceded"
  * "strength": 0.0-1.0, how strongly the text supports the relation
  * "confidence": 0-100
- Direction matters: "from" is the cause or earlier element, "to" is the effect or later element.
- Do not invent evidence that is not in the chunk. Do not extract generic background facts with no investigative value.
- Dates must come from the text. Never guess a date.

# Examples
Text: "After the export ban was announced on 2024-03-02, spot prices rose sharply."
Nodes: export_ban (event, date 2024-03-02), price_rise (event)
Edge: export_ban -> price_rise, relation "triggered", strength 0.8

# Immediate Task Description or Request
Return the extracted nodes and edges as a JSON object.

# Output Formatting
Return a JSON object with this structure:
{
  "nodes": [
    {"id": "...", "type": "...", "label": "...", "date": "", "confidence": 80}
  ],
  "edges": [
    {"from": "...", "to": "...", "relation": "...", "strength": 0.8, "confidence": 75}
  ]
}
`

// DedupePrompt instructs the model to group evidence nodes that describe the
// same real-world thing. Expects one format argument: the node list.
const DedupePrompt = `
# Task Context
You are a helpful assistant specialized in identifying duplicate evidence nodes in an investigation graph. You will be provided with a list of nodes.

# Background Data
%s

# Detailed Task Description & Rules
- Find nodes that are duplicates of each other based on their label and type.
- Consider nodes as duplicates if they describe the same real-world event, actor, resource or decision despite minor naming differences.
- Be careful: related but distinct pieces of evidence must remain separate (e.g., "export ban announced" and "export ban enforced" are different events).
- Never merge nodes of different types.
- Choose a final, canonical label for each group of duplicates.

# Examples
Consider these as duplicates:
- "price spike" and "sharp price increase" (same event, different phrasing)
- "Ministry of Energy" and "energy ministry"

Do NOT consider these as duplicates:
- "pipeline shutdown" and "pipeline maintenance" (different events)
- "export ban announced" and "export ban lifted"

# Immediate Task Description or Request
Return a JSON object listing groups of duplicate nodes along with the chosen canonical label for each group.

# Output Formatting
Return a JSON object with this structure:
{
  "duplicates": [
    {
      "canonicalLabel": "<chosen final label>",
      "nodes": ["<id1>", "<id2>", "<id3>"]
    }
  ]
}
`

// HypothesisLabelPrompt instructs the model to name a causal narrative.
// Expects one format argument: the ordered evidence chain.
const HypothesisLabelPrompt = `
# Task Context
You are an analyst assistant that writes short hypothesis labels for causal narratives. Each narrative is an ordered chain of evidence from an investigation.

# Background Data
Evidence chain, in causal order:
%s

# Detailed Task Description & Rules
- Write one short label (at most 12 words) that summarizes the causal story the chain tells.
- The label must read as a hypothesis, naming the driving cause and the outcome.
- Use only information present in the chain. Do not speculate beyond it.
- Plain language, no trailing punctuation.

# Examples
Chain: export ban -> supply shortfall -> price spike
Label: "Export ban drove the price spike through a supply shortfall"

# Immediate Task Description or Request
Return the label as a JSON object.

# Output Formatting
Return a JSON object with this structure:
{"label": "<hypothesis label>"}
`
