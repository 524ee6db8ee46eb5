package extract

// ExtractClient is the main client for turning source articles into
// evidence graphs. It manages token encoding, chunk processing parallelism,
// and retry behavior for AI requests.
//
// An ExtractClient should be created using NewExtractClient.
type ExtractClient struct {
	tokenEncoder       string
	parallelChunks     int
	parallelAiRequests int
	maxRetries         int
}

// NewExtractClientParams defines the configuration parameters for creating
// a new ExtractClient.
//
// TokenEncoder specifies the encoding strategy for tokens.
// ParallelChunks controls how many article chunks are extracted in parallel.
// ParallelAiRequests controls how many AI requests can run concurrently
// during path labeling.
type NewExtractClientParams struct {
	TokenEncoder       string
	ParallelChunks     int
	ParallelAiRequests int
	MaxRetries         int
}

// NewExtractClient creates and returns a new ExtractClient configured with
// the provided parameters.
//
// Example:
//
//	params := extract.NewExtractClientParams{
//		TokenEncoder:   "o200k_base",
//		ParallelChunks: 4,
//	}
//	client, err := extract.NewExtractClient(params)
//	if err != nil {
//		log.Fatal(err)
//	}
func NewExtractClient(params NewExtractClientParams) (*ExtractClient, error) {
	maxRetries := params.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	parallelChunks := params.ParallelChunks
	if parallelChunks <= 0 {
		parallelChunks = 2
	}
	parallelAiRequests := params.ParallelAiRequests
	if parallelAiRequests <= 0 {
		parallelAiRequests = 4
	}
	encoder := params.TokenEncoder
	if encoder == "" {
		encoder = "o200k_base"
	}

	c := &ExtractClient{
		tokenEncoder:       encoder,
		parallelChunks:     parallelChunks,
		parallelAiRequests: parallelAiRequests,
		maxRetries:         maxRetries,
	}

	return c, nil
}
