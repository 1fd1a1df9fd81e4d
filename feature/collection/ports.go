package collection

import (
	"context"

	"boardgame-sync/feature/airtable"
	"boardgame-sync/feature/bgg"
)

// Catalog is the upstream source of collection and thing payloads.
type Catalog interface {
	Collection(ctx context.Context, query bgg.CollectionQuery) ([]byte, error)
	Things(ctx context.Context, ids []string) ([][]byte, error)
}

// Store is the destination table API.
type Store interface {
	List(ctx context.Context, table string, opts airtable.ListOptions) ([]airtable.Record, error)
	Create(ctx context.Context, table string, fields []airtable.Fields, typecast bool) ([]airtable.Record, error)
	Update(ctx context.Context, table string, records []airtable.Record) ([]airtable.Record, error)
	Destroy(ctx context.Context, table string, ids []string) error
}

// Archiver keeps a copy of raw upstream payloads.
type Archiver interface {
	Save(ctx context.Context, name string, body []byte) error
}

var (
	_ Catalog = (*bgg.Client)(nil)
	_ Store   = (*airtable.Client)(nil)
)
