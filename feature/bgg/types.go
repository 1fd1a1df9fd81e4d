package bgg

import "net/url"

// Subtypes used by the collection endpoint.
const (
	SubtypeBoardgame = "boardgame"
	SubtypeExpansion = "boardgameexpansion"
)

// LinkType is the type attribute of a thing link element.
type LinkType string

const (
	LinkCategory    LinkType = "boardgamecategory"
	LinkMechanic    LinkType = "boardgamemechanic"
	LinkIntegration LinkType = "boardgameintegration"
	LinkExpansion   LinkType = "boardgameexpansion"
)

// Relation is a cross-reference kind maintained in the destination.
type Relation string

const (
	// RelationIntegration links a game to the standalone games it integrates with.
	RelationIntegration Relation = "integration"
	// RelationExpansionOf links an expansion to the games it expands.
	RelationExpansionOf Relation = "expansion-of"
)

// LinkType returns the upstream link type that carries the relation.
func (r Relation) LinkType() LinkType {
	switch r {
	case RelationIntegration:
		return LinkIntegration
	case RelationExpansionOf:
		return LinkExpansion
	default:
		return ""
	}
}

// CollectionQuery selects a slice of a user's collection.
type CollectionQuery struct {
	Username       string
	Subtype        string
	ExcludeSubtype string
	Own            bool
	Preordered     bool
}

// GamesQuery selects the owned base games of a user.
func GamesQuery(username string) CollectionQuery {
	return CollectionQuery{
		Username:       username,
		Subtype:        SubtypeBoardgame,
		ExcludeSubtype: SubtypeExpansion,
		Own:            true,
	}
}

// ExpansionsQuery selects the owned expansions of a user.
func ExpansionsQuery(username string) CollectionQuery {
	return CollectionQuery{
		Username: username,
		Subtype:  SubtypeExpansion,
		Own:      true,
	}
}

// PreorderedExpansionsQuery selects the preordered expansions of a user.
func PreorderedExpansionsQuery(username string) CollectionQuery {
	return CollectionQuery{
		Username:   username,
		Subtype:    SubtypeExpansion,
		Preordered: true,
	}
}

// Values encodes the query as /collection parameters in brief mode.
func (q CollectionQuery) Values() url.Values {
	v := url.Values{}
	v.Set("username", q.Username)
	if q.Subtype != "" {
		v.Set("subtype", q.Subtype)
	}
	if q.ExcludeSubtype != "" {
		v.Set("excludesubtype", q.ExcludeSubtype)
	}
	v.Set("brief", "1")
	if q.Own {
		v.Set("own", "1")
	}
	if q.Preordered {
		v.Set("preordered", "1")
	}
	return v
}

// CollectionItem is one entry of a collection export.
type CollectionItem struct {
	ID         string
	Subtype    string
	Owned      bool
	Preordered bool
}

// Thing is a raw /thing item entry.
type Thing struct {
	Type        string `xml:"type,attr" json:"type"`
	ID          string `xml:"id,attr" json:"id"`
	Thumbnail   string `xml:"thumbnail" json:"thumbnail,omitempty"`
	Image       string `xml:"image" json:"image,omitempty"`
	Names       []Name `xml:"name" json:"names"`
	Description string `xml:"description" json:"description"`
	Year        *Value `xml:"yearpublished" json:"yearpublished,omitempty"`
	MinPlayers  *Value `xml:"minplayers" json:"minplayers,omitempty"`
	MaxPlayers  *Value `xml:"maxplayers" json:"maxplayers,omitempty"`
	MinPlayTime *Value `xml:"minplaytime" json:"minplaytime,omitempty"`
	MaxPlayTime *Value `xml:"maxplaytime" json:"maxplaytime,omitempty"`
	Links       []Link `xml:"link" json:"links"`
}

// Name is a primary or alternate thing name.
type Name struct {
	Type      string `xml:"type,attr" json:"type"`
	SortIndex string `xml:"sortindex,attr" json:"sortindex,omitempty"`
	Value     string `xml:"value,attr" json:"value"`
}

// Value is an element carrying its content in a value attribute.
type Value struct {
	Value string `xml:"value,attr" json:"value"`
}

// Link is a typed reference from a thing to another catalog entity.
type Link struct {
	Type    LinkType `xml:"type,attr" json:"type"`
	ID      string   `xml:"id,attr" json:"id"`
	Value   string   `xml:"value,attr" json:"value"`
	Inbound bool     `xml:"inbound,attr,omitempty" json:"inbound,omitempty"`
}

// PrimaryName returns the primary name, or the first name when none is marked primary.
func (t Thing) PrimaryName() string {
	for _, n := range t.Names {
		if n.Type == "primary" {
			return n.Value
		}
	}
	if len(t.Names) > 0 {
		return t.Names[0].Value
	}
	return ""
}

// ThingRecord is the field payload of one destination row.
type ThingRecord struct {
	ID          string
	Name        string
	Image       string
	MinPlayers  int
	MaxPlayers  int
	MinPlayTime int
	MaxPlayTime int
	Description string
	Tags        []string
}

// IDSet is a set of upstream identifiers.
type IDSet map[string]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...string) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}
