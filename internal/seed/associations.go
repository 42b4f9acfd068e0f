package seed

import "fmt"

// ReferenceMaps carries the resolved natural-key-to-id mappings needed to
// build join rows.
type ReferenceMaps struct {
	Genres    map[string]int64
	Actors    map[string]int64
	Languages map[string]int64
}

// Associations holds the three join-row lists produced for a dataset.
type Associations struct {
	Genres    []AssocRow
	Actors    []AssocRow
	Languages []AssocRow
}

// BuildAssociations produces the movie-genre, movie-actor and movie-language
// join rows for the dataset. movieIDs must be in the same order as the
// dataset rows that produced them. A token missing from its reference map
// means an earlier resolution step was broken; it fails the build rather
// than being skipped.
func BuildAssociations(ds *Dataset, movieIDs []int64, refs ReferenceMaps) (*Associations, error) {
	if len(movieIDs) != len(ds.Rows) {
		return nil, fmt.Errorf("build associations: %d movie ids for %d rows", len(movieIDs), len(ds.Rows))
	}

	out := &Associations{}
	for i, row := range ds.Rows {
		movieID := movieIDs[i]

		for _, token := range splitTokens(row.Genre) {
			id, ok := refs.Genres[token]
			if !ok {
				return nil, fmt.Errorf("movie %q: genre %q not resolved", row.Name, token)
			}
			out.Genres = append(out.Genres, AssocRow{MovieID: movieID, RefID: id})
		}

		for _, token := range splitTokens(row.Crew) {
			id, ok := refs.Actors[token]
			if !ok {
				return nil, fmt.Errorf("movie %q: actor %q not resolved", row.Name, token)
			}
			out.Actors = append(out.Actors, AssocRow{MovieID: movieID, RefID: id})
		}

		for _, token := range splitTokens(row.OrigLang) {
			id, ok := refs.Languages[token]
			if !ok {
				return nil, fmt.Errorf("movie %q: language %q not resolved", row.Name, token)
			}
			out.Languages = append(out.Languages, AssocRow{MovieID: movieID, RefID: id})
		}
	}
	return out, nil
}
