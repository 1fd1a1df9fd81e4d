package collection

import (
	"context"
	"errors"
	"testing"

	"boardgame-sync/feature/bgg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(catalog *fakeCatalog, store *fakeStore, sync Config) *Service {
	return NewService(catalog, store, Options{
		RunID:      "run-1",
		Username:   "alice",
		Games:      GamesKind(testTables),
		Expansions: ExpansionsKind(testTables),
		Sync:       sync,
	}, zap.NewNop())
}

func TestRun_AppliesDiff(t *testing.T) {
	catalog := &fakeCatalog{
		games:      []string{"1", "2", "3"},
		expansions: []string{"10"},
		things: map[string]string{
			"1":  thingItem("1", "boardgame", "One", link(bgg.LinkIntegration, "2", "Two"), link(bgg.LinkIntegration, "99", "Unowned")),
			"10": thingItem("10", "boardgameexpansion", "Ten", link(bgg.LinkExpansion, "1", "One")),
		},
	}
	store := newFakeStore()
	store.seed("Boardgames", "2", "3", "4")

	summary, err := newTestService(catalog, store, Config{ChunkSize: 10}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "run-1", summary.RunID)
	assert.Equal(t, 1, summary.Games.Removed)
	assert.Equal(t, 1, summary.Games.Added)
	assert.Equal(t, 1, summary.Games.Linked)
	assert.Equal(t, 1, summary.Expansions.Added)
	assert.Equal(t, 1, summary.Expansions.Linked)
	assert.Equal(t, []string{"1"}, summary.Games.Plan.ToAdd)
	assert.Equal(t, []string{"4"}, summary.Games.Plan.ToRemove)

	assert.ElementsMatch(t, []string{"1", "2", "3"}, store.ids("Boardgames"))
	assert.Equal(t, []string{"10"}, store.ids("Expansions"))
	assert.Equal(t, [][]string{{"1"}, {"10"}}, catalog.thingCalls)

	assert.Equal(t, []storeCall{
		{Op: "destroy", Table: "Boardgames", Count: 1},
		{Op: "create", Table: "Boardgames", Count: 1},
		{Op: "update", Table: "Boardgames", Count: 1},
		{Op: "create", Table: "Expansions", Count: 1},
		{Op: "update", Table: "Expansions", Count: 1},
	}, store.mutations())

	game := store.handle("Boardgames", "1")
	require.Len(t, store.updates, 2)
	assert.Equal(t, game, store.updates[0].ID)
	assert.Equal(t, []string{store.handle("Boardgames", "2")}, store.updates[0].Fields[FieldIntegrations])
	assert.Equal(t, store.handle("Expansions", "10"), store.updates[1].ID)
	assert.Equal(t, []string{game}, store.updates[1].Fields[FieldBoardgames])
}

func TestRun_DryRunMakesNoMutations(t *testing.T) {
	catalog := &fakeCatalog{games: []string{"1", "2"}, expansions: []string{"10"}}
	store := newFakeStore()
	store.seed("Boardgames", "2", "3")

	summary, err := newTestService(catalog, store, Config{DryRun: true, ChunkSize: 10}).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.DryRun)
	assert.True(t, summary.Games.Plan.DryRun)
	assert.Equal(t, []string{"1"}, summary.Games.Plan.ToAdd)
	assert.Equal(t, []string{"3"}, summary.Games.Plan.ToRemove)
	assert.Equal(t, []string{"10"}, summary.Expansions.Plan.ToAdd)
	assert.Zero(t, summary.Games.Added)
	assert.Empty(t, store.mutations())
	assert.Empty(t, catalog.thingCalls)
}

func TestRun_ResetRecreatesEverything(t *testing.T) {
	catalog := &fakeCatalog{games: []string{"1", "2"}}
	store := newFakeStore()
	store.seed("Boardgames", "1", "2", "3")
	store.seed("Expansions", "10")

	summary, err := newTestService(catalog, store, Config{Reset: true, ChunkSize: 10}).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.FullResync)
	assert.Equal(t, 3, summary.Games.Removed)
	assert.Equal(t, 1, summary.Expansions.Removed)
	assert.Equal(t, 2, summary.Games.Added)
	assert.Equal(t, []string{"1", "2"}, store.ids("Boardgames"))
	assert.Empty(t, store.ids("Expansions"))
}

func TestRun_NoChanges(t *testing.T) {
	catalog := &fakeCatalog{games: []string{"1"}, expansions: []string{"10"}}
	store := newFakeStore()
	store.seed("Boardgames", "1")
	store.seed("Expansions", "10")

	summary, err := newTestService(catalog, store, Config{ChunkSize: 10}).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.Games.Plan.IsEmpty())
	assert.Empty(t, store.mutations())
	assert.Empty(t, catalog.thingCalls)
}

func TestRun_IncludesPreorderedExpansions(t *testing.T) {
	catalog := &fakeCatalog{expansions: []string{"10"}, preordered: []string{"11", "10"}}
	store := newFakeStore()

	svc := NewService(catalog, store, Options{
		Username:          "alice",
		IncludePreordered: true,
		Games:             GamesKind(testTables),
		Expansions:        ExpansionsKind(testTables),
		Sync:              Config{DryRun: true},
	}, zap.NewNop())

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "11"}, summary.Expansions.Plan.ToAdd)
	assert.NotEmpty(t, svc.RunID())
}

func TestRun_CatalogFailureAborts(t *testing.T) {
	catalog := &fakeCatalog{err: &bgg.FetchError{Kind: bgg.ErrRetryExhausted, Path: "/collection", Retries: 10}}
	store := newFakeStore()
	store.seed("Boardgames", "1")

	_, err := newTestService(catalog, store, Config{ChunkSize: 10}).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, bgg.ErrRetryExhausted))
	assert.Empty(t, store.calls)
}

func TestRun_ParseFailureAbortsBeforeCreate(t *testing.T) {
	catalog := &fakeCatalog{
		games:  []string{"1"},
		things: map[string]string{"1": `<item type="boardgame" id="1"><name type="primary" value="Broken"/></item>`},
	}
	store := newFakeStore()

	_, err := newTestService(catalog, store, Config{ChunkSize: 10}).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, bgg.ErrDataShape)
	assert.Empty(t, store.mutations())
}

func TestRun_ArchivesPayloads(t *testing.T) {
	catalog := &fakeCatalog{games: []string{"1"}}
	store := newFakeStore()
	archiver := &fakeArchiver{err: errors.New("bucket unavailable")}

	svc := newTestService(catalog, store, Config{ChunkSize: 10})
	svc.SetArchiver(archiver)

	_, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"collection-games", "collection-expansions", "things-games-001"}, archiver.names)
}

func TestMissingExpansions(t *testing.T) {
	catalog := &fakeCatalog{
		games:      []string{"1", "2"},
		expansions: []string{"10"},
		preordered: []string{"11"},
		things: map[string]string{
			"1": thingItem("1", "boardgame", "One",
				link(bgg.LinkExpansion, "10", "Owned"),
				link(bgg.LinkExpansion, "12", "Missing"),
			),
			"2": thingItem("2", "boardgame", "Two",
				link(bgg.LinkExpansion, "11", "Preordered"),
				link(bgg.LinkExpansion, "12", "Missing"),
				link(bgg.LinkIntegration, "13", "Not an expansion"),
			),
		},
	}

	missing, err := newTestService(catalog, newFakeStore(), Config{}).MissingExpansions(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []MissingExpansion{
		{ID: "12", Name: "Missing", SourceID: "1", SourceName: "One"},
	}, missing)
	assert.Equal(t, "12 (1 One) - Missing", missing[0].String())
}

func TestMissingExpansions_NoGames(t *testing.T) {
	catalog := &fakeCatalog{}

	missing, err := newTestService(catalog, newFakeStore(), Config{}).MissingExpansions(context.Background(), "bob")
	require.NoError(t, err)
	assert.Empty(t, missing)
	assert.Empty(t, catalog.thingCalls)
}
