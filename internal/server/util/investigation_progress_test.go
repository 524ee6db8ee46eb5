package util

import (
	"testing"

	"sleuth/pkg/store"
)

func TestProgressFromArticles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		statuses []string
		want     ExtractionProgress
	}{
		{
			name:     "no_articles",
			statuses: nil,
			want:     ExtractionProgress{},
		},
		{
			name:     "all_pending",
			statuses: []string{store.ArticleStatusPending, store.ArticleStatusPending},
			want:     ExtractionProgress{Total: 2, Pending: 2, Percentage: 0},
		},
		{
			name:     "half_extracted",
			statuses: []string{store.ArticleStatusExtracted, store.ArticleStatusPending},
			want:     ExtractionProgress{Total: 2, Extracted: 1, Pending: 1, Percentage: 50},
		},
		{
			name:     "failed_counts_as_finished",
			statuses: []string{store.ArticleStatusExtracted, store.ArticleStatusFailed},
			want:     ExtractionProgress{Total: 2, Extracted: 1, Failed: 1, Percentage: 100},
		},
		{
			name:     "unknown_status_counts_as_pending",
			statuses: []string{"something_else"},
			want:     ExtractionProgress{Total: 1, Pending: 1, Percentage: 0},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			articles := make([]store.ArticleRecord, 0, len(tc.statuses))
			for _, s := range tc.statuses {
				articles = append(articles, store.ArticleRecord{Status: s})
			}
			got := ProgressFromArticles(articles)
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}
