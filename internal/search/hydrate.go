package search

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/teemow/fathom-mcp/internal/fathom"
)

// hydrate fetches the transcript for every collected meeting that lacks
// one, so transcript search can cover the whole candidate set. It returns
// a new slice of augmented copies; the input is never mutated. Fetches
// run concurrently up to the configured bound, each writing only its own
// slot. A failed fetch is logged and leaves that meeting without a
// transcript; one unavailable recording must not abort the search.
// Meetings without a recording ID are skipped.
func (s *Service) hydrate(ctx context.Context, meetings []fathom.Meeting) []fathom.Meeting {
	hydrated := make([]fathom.Meeting, len(meetings))
	copy(hydrated, meetings)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.hydrationConcurrency)

	for i := range hydrated {
		if hydrated[i].Transcript != nil || hydrated[i].RecordingID == 0 {
			continue
		}

		g.Go(func() error {
			recordingID := hydrated[i].RecordingID
			resp, err := s.api.GetTranscript(gctx, recordingID, "")
			if err != nil {
				s.logger.Warn("transcript fetch failed, searching metadata only",
					slog.Int64("recording_id", recordingID),
					slog.String("error", err.Error()))
				return nil
			}
			transcript := resp.Transcript
			hydrated[i].Transcript = &transcript
			return nil
		})
	}

	// Workers never return errors; Wait only synchronizes completion.
	_ = g.Wait()

	return hydrated
}
