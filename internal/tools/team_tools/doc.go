// Package team_tools provides MCP tools for browsing teams and team
// members in a Fathom workspace.
//
// Available tools:
//
//   - fathom_list_teams - List teams, one page at a time
//   - fathom_list_team_members - List team members, optionally scoped to a
//     single team
//
// Both tools paginate with an opaque cursor returned alongside each page.
package team_tools
