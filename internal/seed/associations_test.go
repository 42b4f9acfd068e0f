package seed

import (
	"reflect"
	"strings"
	"testing"
)

func TestBuildAssociations_AttachesTokensToOwnRow(t *testing.T) {
	ds := &Dataset{Rows: []Row{
		{Name: "Inception", Genre: "Action,Sci-Fi", Crew: "DiCaprio", OrigLang: "English"},
		{Name: "Up", Genre: "Action,Comedy", Crew: "Asner", OrigLang: "English,Spanish"},
	}}
	refs := ReferenceMaps{
		Genres:    map[string]int64{"Action": 1, "Sci-Fi": 2, "Comedy": 3},
		Actors:    map[string]int64{"DiCaprio": 10, "Asner": 11},
		Languages: map[string]int64{"English": 20, "Spanish": 21},
	}

	got, err := BuildAssociations(ds, []int64{100, 200}, refs)
	if err != nil {
		t.Fatalf("BuildAssociations: %v", err)
	}

	wantGenres := []AssocRow{
		{MovieID: 100, RefID: 1},
		{MovieID: 100, RefID: 2},
		{MovieID: 200, RefID: 1},
		{MovieID: 200, RefID: 3},
	}
	if !reflect.DeepEqual(got.Genres, wantGenres) {
		t.Fatalf("genres = %v, want %v", got.Genres, wantGenres)
	}

	wantActors := []AssocRow{
		{MovieID: 100, RefID: 10},
		{MovieID: 200, RefID: 11},
	}
	if !reflect.DeepEqual(got.Actors, wantActors) {
		t.Fatalf("actors = %v, want %v", got.Actors, wantActors)
	}

	wantLanguages := []AssocRow{
		{MovieID: 100, RefID: 20},
		{MovieID: 200, RefID: 20},
		{MovieID: 200, RefID: 21},
	}
	if !reflect.DeepEqual(got.Languages, wantLanguages) {
		t.Fatalf("languages = %v, want %v", got.Languages, wantLanguages)
	}
}

func TestBuildAssociations_SkipsEmptyTokens(t *testing.T) {
	ds := &Dataset{Rows: []Row{
		{Name: "A", Genre: "Action,,  ,Drama", Crew: "", OrigLang: ""},
	}}
	refs := ReferenceMaps{
		Genres:    map[string]int64{"Action": 1, "Drama": 2},
		Actors:    map[string]int64{},
		Languages: map[string]int64{},
	}

	got, err := BuildAssociations(ds, []int64{7}, refs)
	if err != nil {
		t.Fatalf("BuildAssociations: %v", err)
	}
	if len(got.Genres) != 2 {
		t.Fatalf("genres = %v, want 2 rows", got.Genres)
	}
	if len(got.Actors) != 0 || len(got.Languages) != 0 {
		t.Fatalf("empty fields produced rows: %+v", got)
	}
}

func TestBuildAssociations_LookupMissIsFatal(t *testing.T) {
	ds := &Dataset{Rows: []Row{
		{Name: "A", Genre: "Mystery"},
	}}
	refs := ReferenceMaps{Genres: map[string]int64{"Action": 1}}

	_, err := BuildAssociations(ds, []int64{1}, refs)
	if err == nil || !strings.Contains(err.Error(), "not resolved") {
		t.Fatalf("expected lookup miss error, got %v", err)
	}
}

func TestBuildAssociations_IDCountMismatch(t *testing.T) {
	ds := &Dataset{Rows: []Row{{Name: "A"}, {Name: "B"}}}
	if _, err := BuildAssociations(ds, []int64{1}, ReferenceMaps{}); err == nil {
		t.Fatalf("expected error for id/row count mismatch")
	}
}
