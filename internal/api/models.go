package api

type HealthResponse struct {
	Status string `json:"status"`
}

// GenerationRequest is the request body for call, invoke and stream.
type GenerationRequest struct {
	Inputs map[string]any `json:"inputs"`
}

type InvokeResponse struct {
	Output string `json:"output"`
}

// ChainInfo describes one registered chain.
type ChainInfo struct {
	Name       string   `json:"name"`
	InputKeys  []string `json:"input_keys"`
	OutputKeys []string `json:"output_keys"`
}

type ChainListResponse struct {
	Chains []ChainInfo `json:"chains"`
}
