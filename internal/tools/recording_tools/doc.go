// Package recording_tools provides MCP tools for retrieving summary and
// transcript content of Fathom recordings.
//
// Available tools:
//
//   - fathom_get_summary - Get the AI-generated summary of a recording
//   - fathom_get_transcript - Get the full transcript with speakers and
//     timestamps
//
// Both tools accept a single recording ID or an array of IDs. Arrays are
// processed as a batch where one failed recording does not abort the rest;
// the result reports per-recording success and failure.
//
// Example usage:
//
//	# Single recording
//	fathom_get_summary(recording_id=123456)
//
//	# Batch, tolerating individual failures
//	fathom_get_transcript(recording_id=[123456, 789012])
package recording_tools
