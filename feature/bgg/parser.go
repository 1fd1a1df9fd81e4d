package bgg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

type collectionDocument struct {
	XMLName xml.Name
	Items   []collectionEntry `xml:"item"`
	Errors  []upstreamError   `xml:"error"`
	Message string            `xml:"message"`
}

type collectionEntry struct {
	ObjectID string `xml:"objectid,attr"`
	Subtype  string `xml:"subtype,attr"`
	Status   struct {
		Own        string `xml:"own,attr"`
		PreOrdered string `xml:"preordered,attr"`
	} `xml:"status"`
}

type thingsDocument struct {
	XMLName xml.Name
	Items   []Thing         `xml:"item"`
	Errors  []upstreamError `xml:"error"`
	Message string          `xml:"message"`
}

type upstreamError struct {
	Message string `xml:"message"`
}

// ParseCollection extracts collection entries in document order. Duplicates are kept.
func ParseCollection(body []byte) ([]CollectionItem, error) {
	var doc collectionDocument
	if err := decode(body, &doc); err != nil {
		return nil, err
	}
	if err := checkRoot(doc.XMLName, doc.Message, doc.Errors); err != nil {
		return nil, err
	}

	items := make([]CollectionItem, 0, len(doc.Items))
	for i, entry := range doc.Items {
		if entry.ObjectID == "" {
			return nil, fmt.Errorf("%w: collection item %d has no objectid", ErrDataShape, i)
		}
		items = append(items, CollectionItem{
			ID:         entry.ObjectID,
			Subtype:    entry.Subtype,
			Owned:      entry.Status.Own == "1",
			Preordered: entry.Status.PreOrdered == "1",
		})
	}
	return items, nil
}

// IDs projects collection entries to their identifiers.
func IDs(items []CollectionItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

// DecodeThings returns the raw thing entries of a /thing payload.
func DecodeThings(body []byte) ([]Thing, error) {
	var doc thingsDocument
	if err := decode(body, &doc); err != nil {
		return nil, err
	}
	if err := checkRoot(doc.XMLName, doc.Message, doc.Errors); err != nil {
		return nil, err
	}
	return doc.Items, nil
}

// ParseThings converts a /thing payload into destination records and collects the
// edges of relation whose target is in owned. Links to ids outside owned are dropped.
func ParseThings(body []byte, relation Relation, owned IDSet) ([]ThingRecord, *LinkMap, error) {
	things, err := DecodeThings(body)
	if err != nil {
		return nil, nil, err
	}

	linkType := relation.LinkType()
	links := NewLinkMap(relation)
	records := make([]ThingRecord, 0, len(things))

	for _, thing := range things {
		record, err := toRecord(thing)
		if err != nil {
			return nil, nil, err
		}

		for _, link := range thing.Links {
			switch {
			case link.Type == LinkCategory || link.Type == LinkMechanic:
				record.Tags = append(record.Tags, link.Value)
			case link.Type == linkType && owned.Has(link.ID):
				links.Add(thing.ID, link.ID)
			}
		}

		records = append(records, record)
	}

	return records, links, nil
}

func toRecord(thing Thing) (ThingRecord, error) {
	if thing.ID == "" {
		return ThingRecord{}, fmt.Errorf("%w: thing without id", ErrDataShape)
	}

	record := ThingRecord{
		ID:          thing.ID,
		Name:        thing.PrimaryName(),
		Image:       strings.TrimSpace(thing.Image),
		Description: Sanitize(thing.Description),
		Tags:        []string{},
	}

	fields := []struct {
		name  string
		value *Value
		dest  *int
	}{
		{"minplayers", thing.MinPlayers, &record.MinPlayers},
		{"maxplayers", thing.MaxPlayers, &record.MaxPlayers},
		{"minplaytime", thing.MinPlayTime, &record.MinPlayTime},
		{"maxplaytime", thing.MaxPlayTime, &record.MaxPlayTime},
	}
	for _, f := range fields {
		if f.value == nil {
			return ThingRecord{}, fmt.Errorf("%w: thing %s has no %s", ErrDataShape, thing.ID, f.name)
		}
		n, err := strconv.Atoi(strings.TrimSpace(f.value.Value))
		if err != nil {
			return ThingRecord{}, fmt.Errorf("%w: thing %s %s %q is not a number", ErrDataShape, thing.ID, f.name, f.value.Value)
		}
		*f.dest = n
	}

	return record, nil
}

func decode(body []byte, v any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("%w: empty payload", ErrDataShape)
	}
	if err := xml.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrDataShape, err)
	}
	return nil
}

// checkRoot rejects error documents the upstream returns with status 200.
func checkRoot(name xml.Name, message string, errs []upstreamError) error {
	switch name.Local {
	case "items":
		return nil
	case "errors", "error":
		var messages []string
		if m := strings.TrimSpace(message); m != "" {
			messages = append(messages, m)
		}
		for _, e := range errs {
			messages = append(messages, strings.TrimSpace(e.Message))
		}
		return fmt.Errorf("%w: upstream reported %s", ErrDataShape, strings.Join(messages, "; "))
	default:
		return fmt.Errorf("%w: unexpected root element <%s>", ErrDataShape, name.Local)
	}
}
