package domain

// Lookup is the outcome of one completed Zillow call.
type Lookup struct {
	Operation string            `json:"operation"`
	Params    map[string]string `json:"params,omitempty"`
	// Body is the raw XML response, unmodified.
	Body string `json:"body"`
}
