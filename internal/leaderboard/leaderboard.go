// Package leaderboard ranks persisted jokes by how often they were recorded.
//
// Jokes are grouped by text, not by id: the same joke saved under two
// ids counts twice for the same entry. Ties are broken by first
// occurrence in the store, so the result never depends on map order.
package leaderboard

import (
	"fmt"
	"slices"

	"github.com/flemzord/dadjoke/internal/joke"
)

// Entry is one distinct joke text with its occurrence count.
type Entry struct {
	// Record is the first stored occurrence of the text.
	Record joke.Record
	Count  int

	first int
}

// Rank returns one entry per distinct text, most frequent first. Entries
// with equal counts keep the order in which their text first appeared.
func Rank(records []joke.Record) []Entry {
	byText := make(map[string]int, len(records))
	entries := make([]Entry, 0, len(records))

	for i, rec := range records {
		if idx, ok := byText[rec.Text]; ok {
			entries[idx].Count++
			continue
		}
		byText[rec.Text] = len(entries)
		entries = append(entries, Entry{Record: rec, Count: 1, first: i})
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return a.first - b.first
	})
	return entries
}

// MostPopular returns the first stored occurrence of the most frequently
// recorded joke text. It fails with joke.ErrNotFound on an empty store.
func MostPopular(records []joke.Record) (joke.Record, error) {
	if len(records) == 0 {
		return joke.Record{}, fmt.Errorf("leaderboard: store is empty: %w", joke.ErrNotFound)
	}
	return Rank(records)[0].Record, nil
}

// Top returns at most n entries of Rank. n <= 0 returns every entry.
func Top(records []joke.Record, n int) []Entry {
	entries := Rank(records)
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}
