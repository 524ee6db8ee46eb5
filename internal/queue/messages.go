package queue

// QueueExtractMsg asks the worker to extract evidence from one article and
// merge it into the investigation's graph. Location and kind are carried in
// the message so the worker does not need an extra lookup to build the
// loader.
type QueueExtractMsg struct {
	Message         string `json:"message"`
	InvestigationID string `json:"investigation_id"`
	ArticleID       string `json:"article_id"`
	Location        string `json:"location"`
	SourceName      string `json:"source_name"`
	Kind            string `json:"kind"`
}

// QueueSynthesizeMsg asks the worker to rebuild the ranked path set of one
// investigation from its current evidence graph.
type QueueSynthesizeMsg struct {
	Message         string `json:"message"`
	InvestigationID string `json:"investigation_id"`
}
