package classify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/pfrederiksen/university-towns/internal/doctree"
	"github.com/pfrederiksen/university-towns/internal/town"
)

// fakeSource serves parsed fixtures by URL and counts lookups.
type fakeSource struct {
	pages map[string]string // url -> fixture file
	calls int
	err   error
}

func (f *fakeSource) Document(_ context.Context, url string) (*doctree.Document, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	name, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("no fixture for %s", url)
	}
	data, err := os.ReadFile("../../testdata/fixtures/" + name)
	if err != nil {
		return nil, err
	}
	return doctree.Parse(strings.NewReader(string(data)))
}

func TestCorroboratesFastPath(t *testing.T) {
	src := &fakeSource{pages: map[string]string{
		"https://test.example/wiki/Oxford,_Ohio": "article_category.html",
	}}
	checker := NewChecker(src, "https://test.example")

	cand := &town.Candidate{
		Name: "Oxford",
		URL:  "/wiki/Oxford,_Ohio",
		// No universities on purpose: the category link alone must decide.
	}

	ok, err := checker.Corroborates(context.Background(), cand)
	if err != nil {
		t.Fatalf("Corroborates failed: %v", err)
	}
	if !ok {
		t.Error("expected category membership to corroborate")
	}
}

func TestCorroboratesSlowPath(t *testing.T) {
	tests := []struct {
		name         string
		fixture      string
		universities []string
		want         bool
	}{
		{
			name:         "two in-scope mentions accept",
			fixture:      "article_mentions.html",
			universities: []string{"university of california, berkeley"},
			want:         true,
		},
		{
			name:         "single in-scope mention rejects",
			fixture:      "article_weak.html",
			universities: []string{"some college"},
			want:         false,
		},
		{
			name:         "unmentioned university rejects",
			fixture:      "article_mentions.html",
			universities: []string{"stanford university"},
			want:         false,
		},
		{
			name:         "no universities rejects",
			fixture:      "article_weak.html",
			universities: nil,
			want:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{pages: map[string]string{
				"https://test.example/wiki/Town": tt.fixture,
			}}
			checker := NewChecker(src, "https://test.example")

			cand := &town.Candidate{
				Name:         "Town",
				URL:          "/wiki/Town",
				Universities: tt.universities,
			}
			ok, err := checker.Corroborates(context.Background(), cand)
			if err != nil {
				t.Fatalf("Corroborates failed: %v", err)
			}
			if ok != tt.want {
				t.Errorf("Corroborates = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestCorroboratesOutOfScopeMentionsNeverCount(t *testing.T) {
	// article_weak.html mentions "some college" three times, but only once
	// in the lead; the History mentions must not push it over the threshold.
	src := &fakeSource{pages: map[string]string{
		"https://test.example/wiki/Smalltown,_Ohio": "article_weak.html",
	}}
	checker := NewChecker(src, "https://test.example")

	cand := &town.Candidate{
		Name:         "Smalltown",
		URL:          "/wiki/Smalltown,_Ohio",
		Universities: []string{"some college"},
	}
	ok, err := checker.Corroborates(context.Background(), cand)
	if err != nil {
		t.Fatalf("Corroborates failed: %v", err)
	}
	if ok {
		t.Error("out-of-scope mentions must not corroborate")
	}
}

func TestCorroboratesFetchError(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}
	checker := NewChecker(src, "https://test.example")

	cand := &town.Candidate{Name: "Faultville", URL: "/wiki/Faultville,_Ohio"}
	ok, err := checker.Corroborates(context.Background(), cand)
	if err == nil {
		t.Fatal("expected a fetch error")
	}
	if ok {
		t.Error("a failed fetch must not corroborate")
	}
	if !strings.Contains(err.Error(), "Faultville") {
		t.Errorf("error should name the candidate, got %q", err)
	}
}

func TestNewCheckerDefaultBaseURL(t *testing.T) {
	checker := NewChecker(&fakeSource{}, "")
	if checker.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", checker.baseURL, DefaultBaseURL)
	}
}
