// Package analysis orchestrates conversation analysis: it renders a
// transcript, detects mentioned projects, retrieves relevant passages, and
// fans out three concurrent generation tasks (summary, tags, priority)
// whose validated outputs form a single AnalysisResult.
//
// The generation provider returns unstructured text, so each task carries
// its own output validation: the tagger decodes against a fixed vocabulary
// with a bracket-salvage fallback, the prioritizer normalizes and scans for
// a known level with a default of medium, and the summarizer passes trimmed
// text through verbatim.
package analysis
