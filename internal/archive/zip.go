// Package archive packs rendered images into a single downloadable zip.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/UnendingLoop/ImageWatermarker/internal/model"
	"github.com/klauspost/compress/zip"
)

// уже сжатые форматы кладем без компрессии
var storedTypes = map[string]bool{
	model.JPEG: true,
	model.PNG:  true,
	model.GIF:  true,
	model.WEBP: true,
}

type ZipPackager struct {
	now func() time.Time
}

func NewZipPackager() *ZipPackager {
	return &ZipPackager{now: time.Now}
}

// Pack writes entries into a zip archive in input order. Entries sharing a name collapse into one:
// the last one's data wins, the position is the first one's.
func (p *ZipPackager) Pack(ctx context.Context, entries []model.ArchiveEntry) ([]byte, error) {
	entries = dedupe(entries)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	modified := p.now()

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			_ = zw.Close()
			return nil, err
		}

		method := zip.Deflate
		if storedTypes[e.ContentType] {
			method = zip.Store
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.Name,
			Method:   method,
			Modified: modified,
		})
		if err != nil {
			_ = zw.Close()
			return nil, fmt.Errorf("failed to create zip entry %q: %w", e.Name, err)
		}
		if _, err := w.Write(e.Data); err != nil {
			_ = zw.Close()
			return nil, fmt.Errorf("failed to write zip entry %q: %w", e.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize zip: %w", err)
	}
	return buf.Bytes(), nil
}

func dedupe(entries []model.ArchiveEntry) []model.ArchiveEntry {
	pos := make(map[string]int, len(entries))
	res := make([]model.ArchiveEntry, 0, len(entries))
	for _, e := range entries {
		if i, ok := pos[e.Name]; ok {
			res[i] = e
			continue
		}
		pos[e.Name] = len(res)
		res = append(res, e)
	}
	return res
}
