package face

// Result is the normalized outcome of one verification call. Fields missing
// from the remote response hold reject-leaning defaults.
type Result struct {
	Match      bool
	Confidence float64
	Distance   float64
	Threshold  float64
}

const (
	defaultConfidence = 0.0
	defaultDistance   = 1.0
)

type verifyRequest struct {
	StoredEmbedding []float64 `json:"stored_embedding"`
	Image           string    `json:"image"`
}

// verifyResponse keeps every field optional so absence is distinguishable
// from a zero value.
type verifyResponse struct {
	Match      *bool    `json:"match"`
	Confidence *float64 `json:"confidence"`
	Distance   *float64 `json:"distance"`
	Threshold  *float64 `json:"threshold"`
	Error      string   `json:"error"`
}

type registerRequest struct {
	Image string `json:"image"`
}

type registerResponse struct {
	Embedding []float64 `json:"embedding"`
	Error     string    `json:"error"`
}

type errorResponse struct {
	Error string `json:"error"`
}
