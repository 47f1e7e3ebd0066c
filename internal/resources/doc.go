// Package resources provides MCP resources exposing read-only server and
// workspace data. Resources are data sources MCP clients can fetch without
// invoking a tool, such as server configuration and the team roster.
package resources
