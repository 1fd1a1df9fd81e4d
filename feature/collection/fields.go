package collection

import (
	"boardgame-sync/feature/airtable"
	"boardgame-sync/feature/bgg"
)

// Destination column names.
const (
	FieldID           = "ID"
	FieldName         = "Name"
	FieldImages       = "Images"
	FieldMinPlayers   = "Min Players"
	FieldMaxPlayers   = "Max Players"
	FieldMinPlayTime  = "Min Playing Time"
	FieldMaxPlayTime  = "Max Playing Time"
	FieldDescription  = "Description"
	FieldTags         = "BGG Tags"
	FieldIntegrations = "Integrations"
	FieldBoardgames   = "Boardgames"
)

type attachment struct {
	URL string `json:"url"`
}

// recordFields maps a parsed thing onto the destination columns.
// Images is left out when the thing has no image.
func recordFields(r bgg.ThingRecord) airtable.Fields {
	fields := airtable.Fields{
		FieldID:          r.ID,
		FieldName:        r.Name,
		FieldMinPlayers:  r.MinPlayers,
		FieldMaxPlayers:  r.MaxPlayers,
		FieldMinPlayTime: r.MinPlayTime,
		FieldMaxPlayTime: r.MaxPlayTime,
		FieldDescription: r.Description,
		FieldTags:        r.Tags,
	}
	if r.Image != "" {
		fields[FieldImages] = []attachment{{URL: r.Image}}
	}
	return fields
}
