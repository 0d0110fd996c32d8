package service

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Somethings1/fintrack-sub000/internal/api"
	"github.com/Somethings1/fintrack-sub000/internal/model"
	"github.com/Somethings1/fintrack-sub000/internal/repo"
)

// record constrains P to a pointer to T implementing model.Doc, so generic
// code can allocate fresh records for decoding.
type record[T any] interface {
	*T
	model.Doc
}

// maxLineSize bounds a single streamed record. Lines beyond this indicate a
// broken stream, not a real entity.
const maxLineSize = 4 * 1024 * 1024

// FetchSince pulls every record of col changed since the checkpoint from the
// backend's newline-delimited JSON stream and commits each one into dest as
// it is decoded. Malformed lines — including a trailing partial line cut off
// by the end of the stream — are logged and dropped, never fatal. A non-2xx
// response commits nothing and surfaces as *api.StatusError. A storage
// failure aborts the batch: records already committed stay (re-fetching them
// is harmless, upserts are idempotent).
//
// FetchSince does not touch checkpoints; that is the poller's job.
func FetchSince[T any, P record[T]](
	ctx context.Context,
	client *api.Client,
	col model.Collection,
	since time.Time,
	dest repo.Collection[P],
	log *zap.SugaredLogger,
) (int, error) {
	path := fmt.Sprintf("/api/%s/get-since/%s", col, since.UTC().Format(time.RFC3339))
	body, err := client.GetStream(ctx, path)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	sc := bufio.NewScanner(body)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	committed := 0
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		rec := P(new(T))
		if err := json.Unmarshal(line, rec); err != nil {
			log.Warnw("dropping malformed stream line",
				"collection", col, "error", err, "line", truncate(line, 200))
			continue
		}
		if err := dest.Put(ctx, rec); err != nil {
			return committed, err
		}
		committed++
	}
	if err := sc.Err(); err != nil {
		// Partial read: keep what we committed, report the cut so the
		// caller does not advance its checkpoint over the gap.
		return committed, fmt.Errorf("reading %s stream: %w", col, err)
	}
	return committed, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
