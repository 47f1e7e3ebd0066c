package search

import (
	"context"
	"log/slog"

	"github.com/teemow/fathom-mcp/internal/fathom"
)

// collect walks the meetings listing cursor by cursor, accumulating every
// record in upstream order, until a page comes back empty, the cursor
// runs out, or the page cap is hit. Summaries are always requested so
// metadata matching can cover them without extra calls. Records repeated
// across pages (a page boundary can shift if a meeting is inserted mid
// pagination) are dropped, keeping the first occurrence. A failed page
// fetch aborts the whole collection; partial results are discarded.
// The second return value is the number of pages fetched.
func (s *Service) collect(ctx context.Context) ([]fathom.Meeting, int, error) {
	var meetings []fathom.Meeting
	seen := make(map[int64]struct{})
	cursor := ""
	pagesFetched := 0

	for page := 1; page <= s.maxPages; page++ {
		s.logger.Info("fetching meetings page",
			slog.Int("page", page),
			slog.Int("max_pages", s.maxPages))

		params := &fathom.ListMeetingsParams{
			Cursor:         cursor,
			IncludeSummary: fathom.Bool(true),
			PerPage:        s.perPage,
		}
		resp, err := s.api.ListMeetings(ctx, params)
		if err != nil {
			return nil, 0, err
		}
		pagesFetched++

		if len(resp.Items) == 0 {
			break
		}

		for _, m := range resp.Items {
			if m.RecordingID != 0 {
				if _, dup := seen[m.RecordingID]; dup {
					continue
				}
				seen[m.RecordingID] = struct{}{}
			}
			meetings = append(meetings, m)
		}

		cursor = resp.Cursor
		if cursor == "" {
			break
		}
	}

	s.logger.Info("meetings collected",
		slog.Int("total", len(meetings)),
		slog.Int("pages", pagesFetched))
	return meetings, pagesFetched, nil
}
