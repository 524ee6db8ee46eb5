package util

import "sleuth/pkg/store"

// ExtractionProgress summarizes how far article extraction has come for one
// investigation.
type ExtractionProgress struct {
	Total      int `json:"total"`
	Extracted  int `json:"extracted"`
	Failed     int `json:"failed"`
	Pending    int `json:"pending"`
	Percentage int `json:"percentage"`
}

// ProgressFromArticles derives the extraction progress from the current set
// of article records. Failed articles count as finished so a permanently
// broken source cannot keep an investigation at 99% forever.
func ProgressFromArticles(articles []store.ArticleRecord) ExtractionProgress {
	p := ExtractionProgress{Total: len(articles)}
	for _, a := range articles {
		switch a.Status {
		case store.ArticleStatusExtracted:
			p.Extracted++
		case store.ArticleStatusFailed:
			p.Failed++
		default:
			p.Pending++
		}
	}
	if p.Total > 0 {
		p.Percentage = (p.Extracted + p.Failed) * 100 / p.Total
	}
	return p
}
