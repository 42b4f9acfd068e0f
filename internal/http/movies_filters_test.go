package httpserver

import (
	"net/url"
	"testing"
)

func TestBuildMovieFilters(t *testing.T) {
	values, _ := url.ParseQuery("q= incep &year=2010&genre=Action&limit=50")

	filters, err := buildMovieFilters(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filters.Query == nil || *filters.Query != "incep" {
		t.Fatalf("query not trimmed: %+v", filters.Query)
	}
	if filters.Year == nil || *filters.Year != 2010 {
		t.Fatalf("year parse failed: %+v", filters.Year)
	}
	if filters.Genre == nil || *filters.Genre != "Action" {
		t.Fatalf("genre parse failed: %+v", filters.Genre)
	}
	if filters.Limit != 50 {
		t.Fatalf("limit not parsed: %d", filters.Limit)
	}
	if filters.Cursor != nil {
		t.Fatalf("unexpected cursor: %+v", filters.Cursor)
	}
}

func TestBuildMovieFilters_InvalidYear(t *testing.T) {
	values, _ := url.ParseQuery("year=abc")
	if _, err := buildMovieFilters(values); err == nil {
		t.Fatalf("expected error for invalid year")
	}
}

func TestBuildMovieFilters_InvalidCursor(t *testing.T) {
	values, _ := url.ParseQuery("cursor=not-base64!!")
	if _, err := buildMovieFilters(values); err == nil {
		t.Fatalf("expected error for invalid cursor")
	}
}
