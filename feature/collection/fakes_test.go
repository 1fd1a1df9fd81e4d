package collection

import (
	"context"
	"fmt"
	"strings"

	"boardgame-sync/feature/airtable"
	"boardgame-sync/feature/bgg"
)

// fakeCatalog serves collection exports and thing entries from memory.
type fakeCatalog struct {
	games      []string
	expansions []string
	preordered []string
	things     map[string]string
	err        error

	thingCalls [][]string
}

func (c *fakeCatalog) Collection(ctx context.Context, q bgg.CollectionQuery) ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	switch {
	case q.Subtype == bgg.SubtypeBoardgame:
		return []byte(collectionXML(q.Subtype, c.games)), nil
	case q.Preordered:
		return []byte(collectionXML(q.Subtype, c.preordered)), nil
	default:
		return []byte(collectionXML(q.Subtype, c.expansions)), nil
	}
}

func (c *fakeCatalog) Things(ctx context.Context, ids []string) ([][]byte, error) {
	c.thingCalls = append(c.thingCalls, ids)

	var b strings.Builder
	b.WriteString(`<items termsofuse="https://boardgamegeek.com/xmlapi/termsofuse">`)
	for _, id := range ids {
		item, ok := c.things[id]
		if !ok {
			item = thingItem(id, "boardgame", "Game "+id)
		}
		b.WriteString(item)
	}
	b.WriteString(`</items>`)
	return [][]byte{[]byte(b.String())}, nil
}

func collectionXML(subtype string, ids []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<items totalitems="%d">`, len(ids))
	for _, id := range ids {
		fmt.Fprintf(&b, `<item objecttype="thing" objectid="%s" subtype="%s"><status own="1" preordered="0"/></item>`, id, subtype)
	}
	b.WriteString(`</items>`)
	return b.String()
}

func thingItem(id, typ, name string, links ...string) string {
	return fmt.Sprintf(`<item type="%s" id="%s">
		<image>https://img.example/%s.jpg</image>
		<name type="primary" sortindex="1" value="%s"/>
		<description>About %s</description>
		<minplayers value="1"/><maxplayers value="4"/>
		<minplaytime value="30"/><maxplaytime value="60"/>
		<link type="boardgamecategory" id="1" value="Strategy"/>
		%s
	</item>`, typ, id, id, name, name, strings.Join(links, "\n"))
}

func link(typ bgg.LinkType, id, value string) string {
	return fmt.Sprintf(`<link type="%s" id="%s" value="%s"/>`, typ, id, value)
}

type storeCall struct {
	Op    string
	Table string
	Count int
}

// fakeStore is an in-memory destination. List ignores formulas and returns every
// row of the table, which is a superset of what a filtered query would return.
type fakeStore struct {
	tables  map[string][]airtable.Record
	calls   []storeCall
	updates []airtable.Record
	nextID  int
	failOn  string
}

func newFakeStore() *fakeStore {
	return &fakeStore{tables: make(map[string][]airtable.Record)}
}

func (s *fakeStore) seed(table string, ids ...string) {
	for _, id := range ids {
		s.nextID++
		s.tables[table] = append(s.tables[table], airtable.Record{
			ID:     fmt.Sprintf("rec%d", s.nextID),
			Fields: airtable.Fields{FieldID: id},
		})
	}
}

func (s *fakeStore) handle(table, id string) string {
	for _, r := range s.tables[table] {
		if r.Fields[FieldID] == id {
			return r.ID
		}
	}
	return ""
}

func (s *fakeStore) ids(table string) []string {
	var out []string
	for _, r := range s.tables[table] {
		out = append(out, fmt.Sprint(r.Fields[FieldID]))
	}
	return out
}

func (s *fakeStore) mutations() []storeCall {
	var out []storeCall
	for _, c := range s.calls {
		if c.Op != "list" {
			out = append(out, c)
		}
	}
	return out
}

func (s *fakeStore) fail(op string) error {
	if s.failOn == op {
		return &airtable.APIError{Method: op, Status: 500, Message: "boom"}
	}
	return nil
}

func (s *fakeStore) List(ctx context.Context, table string, opts airtable.ListOptions) ([]airtable.Record, error) {
	s.calls = append(s.calls, storeCall{Op: "list", Table: table})
	if err := s.fail("list"); err != nil {
		return nil, err
	}
	return append([]airtable.Record(nil), s.tables[table]...), nil
}

func (s *fakeStore) Create(ctx context.Context, table string, fields []airtable.Fields, typecast bool) ([]airtable.Record, error) {
	s.calls = append(s.calls, storeCall{Op: "create", Table: table, Count: len(fields)})
	if err := s.fail("create"); err != nil {
		return nil, err
	}
	if !typecast {
		return nil, fmt.Errorf("create without typecast")
	}
	var created []airtable.Record
	for _, f := range fields {
		s.nextID++
		r := airtable.Record{ID: fmt.Sprintf("rec%d", s.nextID), Fields: f}
		s.tables[table] = append(s.tables[table], r)
		created = append(created, r)
	}
	return created, nil
}

func (s *fakeStore) Update(ctx context.Context, table string, records []airtable.Record) ([]airtable.Record, error) {
	s.calls = append(s.calls, storeCall{Op: "update", Table: table, Count: len(records)})
	if err := s.fail("update"); err != nil {
		return nil, err
	}
	s.updates = append(s.updates, records...)
	for _, u := range records {
		for i, r := range s.tables[table] {
			if r.ID == u.ID {
				for k, v := range u.Fields {
					s.tables[table][i].Fields[k] = v
				}
			}
		}
	}
	return records, nil
}

func (s *fakeStore) Destroy(ctx context.Context, table string, ids []string) error {
	s.calls = append(s.calls, storeCall{Op: "destroy", Table: table, Count: len(ids)})
	if err := s.fail("destroy"); err != nil {
		return err
	}
	drop := bgg.NewIDSet(ids...)
	kept := s.tables[table][:0]
	for _, r := range s.tables[table] {
		if !drop.Has(r.ID) {
			kept = append(kept, r)
		}
	}
	s.tables[table] = kept
	return nil
}

type fakeArchiver struct {
	names []string
	err   error
}

func (a *fakeArchiver) Save(ctx context.Context, name string, body []byte) error {
	a.names = append(a.names, name)
	return a.err
}
