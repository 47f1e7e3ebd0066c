// Package output shapes tool responses for LLM consumption.
//
// Upstream responses carry many nulls, empty collections, and fields an
// agent has no use for (pagination link objects, duplicated titles,
// derived email domains). Sanitize strips those recursively, and Encoder
// renders the result as indented JSON or as YAML, which is noticeably
// cheaper in tokens for list-heavy responses.
package output
