// Package fathom provides a client for the Fathom external API v1.
//
// Fathom automatically records, transcribes, and summarizes Zoom,
// Google Meet, and Microsoft Teams meetings. This package exposes the
// listing endpoints (meetings, teams, team members) and the per-recording
// content endpoints (summary, transcript).
//
// Authentication uses a server-side API key sent in the X-Api-Key header.
// Create a client with the key from the FATHOM_API_KEY environment:
//
//	client, err := fathom.NewClient(os.Getenv("FATHOM_API_KEY"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	page, err := client.ListMeetings(ctx, &fathom.ListMeetingsParams{
//	    IncludeSummary: fathom.Bool(true),
//	})
//
// All non-success responses are returned as *APIError carrying the HTTP
// status code, so callers can distinguish authorization failures, missing
// resources, and rate limiting. The client never retries.
package fathom
