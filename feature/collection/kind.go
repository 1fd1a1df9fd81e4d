package collection

import (
	"boardgame-sync/feature/airtable"
	"boardgame-sync/feature/bgg"
)

// RecordKind describes one synchronized table and the relation its rows carry.
type RecordKind struct {
	// Name labels the kind in logs and summaries.
	Name string
	// Table holds the rows of this kind.
	Table string
	// Relation is the cross-reference kept on each row.
	Relation bgg.Relation
	// RelationField is the column holding the linked handles.
	RelationField string
	// TargetTable holds the rows the relation points at.
	TargetTable string
}

// GamesKind is the base game table; games link to the games they integrate with.
func GamesKind(cfg airtable.Config) RecordKind {
	return RecordKind{
		Name:          "games",
		Table:         cfg.GamesTable,
		Relation:      bgg.RelationIntegration,
		RelationField: FieldIntegrations,
		TargetTable:   cfg.GamesTable,
	}
}

// ExpansionsKind is the expansion table; expansions link to the games they expand.
func ExpansionsKind(cfg airtable.Config) RecordKind {
	return RecordKind{
		Name:          "expansions",
		Table:         cfg.ExpansionsTable,
		Relation:      bgg.RelationExpansionOf,
		RelationField: FieldBoardgames,
		TargetTable:   cfg.GamesTable,
	}
}
