package catalog

import (
	"context"
	"sync"

	"github.com/switchgames/site/store"
)

// EnrichedGame is a stored game merged with live catalog statistics.
// When enrichment fails the embedded record is returned unmodified and
// the live fields stay zero.
type EnrichedGame struct {
	store.Game
	Name       string `json:"name,omitempty"`
	Visits     int64  `json:"visits,omitempty"`
	Playing    int64  `json:"playing,omitempty"`
	Likes      int64  `json:"likes,omitempty"`
	MaxPlayers int    `json:"maxPlayers,omitempty"`
	Created    string `json:"created,omitempty"`
	Updated    string `json:"updated,omitempty"`
}

// EnrichGames fetches live statistics for every game concurrently. The
// result order matches the input order. Any lookup failure leaves that
// game's record unmodified; resolved universe IDs appear only in the
// result, never written back to storage.
func (c *Client) EnrichGames(ctx context.Context, games []store.Game) []EnrichedGame {
	enriched := make([]EnrichedGame, len(games))

	var wg sync.WaitGroup
	for i, game := range games {
		enriched[i] = EnrichedGame{Game: game}
		wg.Add(1)
		go func(i int, game store.Game) {
			defer wg.Done()
			if e, ok := c.enrichOne(ctx, game); ok {
				enriched[i] = e
			}
		}(i, game)
	}
	wg.Wait()

	return enriched
}

func (c *Client) enrichOne(ctx context.Context, game store.Game) (EnrichedGame, bool) {
	universeID := game.UniverseID
	if universeID == "" {
		if game.PlaceID == "" {
			return EnrichedGame{}, false
		}
		id, err := c.ResolveUniverse(ctx, game.PlaceID)
		if err != nil {
			return EnrichedGame{}, false
		}
		universeID = id
	}

	stats, err := c.Stats(ctx, universeID)
	if err != nil {
		return EnrichedGame{}, false
	}

	e := EnrichedGame{
		Game:       game,
		Name:       stats.Name,
		Visits:     stats.Visits,
		Playing:    stats.Playing,
		Likes:      stats.Likes,
		MaxPlayers: stats.MaxPlayers,
		Created:    stats.Created,
		Updated:    stats.Updated,
	}
	e.UniverseID = universeID
	if e.PlaceID == "" {
		e.PlaceID = stats.RootPlaceID.String()
	}
	return e, true
}
