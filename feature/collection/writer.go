package collection

import (
	"context"
	"fmt"
	"strings"

	"boardgame-sync/core/utils"
	"boardgame-sync/feature/airtable"
	"boardgame-sync/feature/bgg"

	"go.uber.org/zap"
)

// lookupBatchSize bounds the number of ids in one resolution formula.
const lookupBatchSize = 50

// ExistingRow is a destination row reduced to its handle and upstream id.
type ExistingRow struct {
	Handle string
	ID     string
}

// Writer applies chunked mutations to the destination tables.
// Chunks are issued one after another in input order.
type Writer struct {
	store     Store
	chunkSize int
	logger    *zap.Logger
}

// NewWriter creates a writer. The chunk size is capped at the destination batch limit.
func NewWriter(store Store, chunkSize int, logger *zap.Logger) *Writer {
	if chunkSize <= 0 || chunkSize > airtable.MaxBatchSize {
		chunkSize = airtable.MaxBatchSize
	}
	return &Writer{store: store, chunkSize: chunkSize, logger: logger}
}

// ExistingRecords lists every row of table with its ID column.
func (w *Writer) ExistingRecords(ctx context.Context, table string) ([]ExistingRow, error) {
	records, err := w.store.List(ctx, table, airtable.ListOptions{Fields: []string{FieldID}})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}

	rows := make([]ExistingRow, len(records))
	for i, r := range records {
		rows[i] = ExistingRow{Handle: r.ID, ID: utils.ToString(r.Fields[FieldID])}
	}
	return rows, nil
}

// RemoveRecords destroys the rows with the given handles and returns how many were removed.
func (w *Writer) RemoveRecords(ctx context.Context, table string, handles []string) (int, error) {
	chunks := utils.Chunk(handles, w.chunkSize)
	removed := 0

	for i, chunk := range chunks {
		if err := w.store.Destroy(ctx, table, chunk); err != nil {
			return removed, fmt.Errorf("failed to remove chunk %d/%d from %s: %w", i+1, len(chunks), table, err)
		}
		removed += len(chunk)
		w.logger.Info("Removed records",
			zap.String("table", table),
			zap.Int("chunk", i+1),
			zap.Int("chunks", len(chunks)),
			zap.Strings("handles", chunk),
		)
	}

	return removed, nil
}

// CreateRecords inserts one row per record with typecasting enabled.
func (w *Writer) CreateRecords(ctx context.Context, table string, records []bgg.ThingRecord) (int, error) {
	chunks := utils.Chunk(records, w.chunkSize)
	created := 0

	for i, chunk := range chunks {
		fields := make([]airtable.Fields, len(chunk))
		names := make([]string, len(chunk))
		for j, r := range chunk {
			fields[j] = recordFields(r)
			names[j] = r.Name
		}

		if _, err := w.store.Create(ctx, table, fields, true); err != nil {
			return created, fmt.Errorf("failed to create chunk %d/%d in %s: %w", i+1, len(chunks), table, err)
		}
		created += len(chunk)
		w.logger.Info("Created records",
			zap.String("table", table),
			zap.Int("chunk", i+1),
			zap.Int("chunks", len(chunks)),
			zap.Strings("names", names),
		)
	}

	return created, nil
}

// Resolve maps each upstream id to its row handle in table.
// Every id must resolve; otherwise ErrLinkResolutionMissing is returned.
func (w *Writer) Resolve(ctx context.Context, table string, ids []string) (map[string]string, error) {
	handles := make(map[string]string, len(ids))

	for _, batch := range utils.Chunk(ids, lookupBatchSize) {
		records, err := w.store.List(ctx, table, airtable.ListOptions{
			FilterByFormula: airtable.MatchAnyFormula(FieldID, batch),
			Fields:          []string{FieldID},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to resolve ids in %s: %w", table, err)
		}
		for _, r := range records {
			id := utils.ToString(r.Fields[FieldID])
			if _, seen := handles[id]; !seen {
				handles[id] = r.ID
			}
		}
	}

	var missing []string
	for _, id := range ids {
		if _, ok := handles[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrLinkResolutionMissing, strings.Join(missing, ","), table)
	}

	return handles, nil
}

// PatchLinks sets the relation column of every source row in links to the
// handles of its targets. It returns the number of rows updated.
func (w *Writer) PatchLinks(ctx context.Context, kind RecordKind, links *bgg.LinkMap) (int, error) {
	if links == nil || links.Len() == 0 {
		return 0, nil
	}

	sources := links.Sources()
	targets := links.TargetIDs()

	var sourceHandles, targetHandles map[string]string
	var err error

	if kind.Table == kind.TargetTable {
		sourceHandles, err = w.Resolve(ctx, kind.Table, union(sources, targets))
		if err != nil {
			return 0, err
		}
		targetHandles = sourceHandles
	} else {
		if sourceHandles, err = w.Resolve(ctx, kind.Table, sources); err != nil {
			return 0, err
		}
		if targetHandles, err = w.Resolve(ctx, kind.TargetTable, targets); err != nil {
			return 0, err
		}
	}

	updates := make([]airtable.Record, 0, len(sources))
	for _, source := range sources {
		linked := make([]string, 0)
		for _, target := range links.Targets(source) {
			linked = append(linked, targetHandles[target])
		}
		updates = append(updates, airtable.Record{
			ID:     sourceHandles[source],
			Fields: airtable.Fields{kind.RelationField: linked},
		})
	}

	chunks := utils.Chunk(updates, w.chunkSize)
	patched := 0
	for i, chunk := range chunks {
		if _, err := w.store.Update(ctx, kind.Table, chunk); err != nil {
			return patched, fmt.Errorf("failed to patch %s chunk %d/%d: %w", kind.RelationField, i+1, len(chunks), err)
		}
		patched += len(chunk)
		w.logger.Info("Patched links",
			zap.String("table", kind.Table),
			zap.String("field", kind.RelationField),
			zap.Int("chunk", i+1),
			zap.Int("chunks", len(chunks)),
		)
	}

	return patched, nil
}

func union(a, b []string) []string {
	seen := bgg.NewIDSet()
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, id := range list {
			if !seen.Has(id) {
				seen[id] = struct{}{}
				out = append(out, id)
			}
		}
	}
	return out
}
