package collection

import (
	"context"
	"fmt"

	"boardgame-sync/feature/bgg"
)

// MissingExpansion is an expansion of an owned game that is neither owned nor preordered.
type MissingExpansion struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	SourceID   string `json:"source_id"`
	SourceName string `json:"source_name"`
}

func (m MissingExpansion) String() string {
	return fmt.Sprintf("%s (%s %s) - %s", m.ID, m.SourceID, m.SourceName, m.Name)
}

// MissingExpansions audits the collection of username (the configured owner
// when empty). Each missing expansion is reported once, with the first owned
// game that links to it.
func (s *Service) MissingExpansions(ctx context.Context, username string) ([]MissingExpansion, error) {
	if username == "" {
		username = s.opts.Username
	}

	gameIDs, err := s.collectionIDs(ctx, "collection-games", bgg.GamesQuery(username))
	if err != nil {
		return nil, err
	}
	owned, err := s.collectionIDs(ctx, "collection-expansions", bgg.ExpansionsQuery(username))
	if err != nil {
		return nil, err
	}
	preordered, err := s.collectionIDs(ctx, "collection-preordered", bgg.PreorderedExpansionsQuery(username))
	if err != nil {
		return nil, err
	}
	have := bgg.NewIDSet(append(owned, preordered...)...)

	if len(gameIDs) == 0 {
		return nil, nil
	}
	payloads, err := s.catalog.Things(ctx, gameIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch owned games: %w", err)
	}

	reported := bgg.NewIDSet()
	var missing []MissingExpansion
	for _, body := range payloads {
		things, err := bgg.DecodeThings(body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse owned games: %w", err)
		}
		for _, thing := range things {
			for _, link := range thing.Links {
				if link.Type != bgg.LinkExpansion || have.Has(link.ID) || reported.Has(link.ID) {
					continue
				}
				reported[link.ID] = struct{}{}
				missing = append(missing, MissingExpansion{
					ID:         link.ID,
					Name:       link.Value,
					SourceID:   thing.ID,
					SourceName: thing.PrimaryName(),
				})
			}
		}
	}

	return missing, nil
}
