package server

// PathRequest is the query string of GET /v1/path.
type PathRequest struct {
	From    string `form:"from" binding:"required"`
	Through string `form:"through"`
	To      string `form:"to" binding:"required"`
}

// LengthResponse is returned by GET /v1/length. Length is -1 when there is
// no path.
type LengthResponse struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Length int    `json:"length"`
}

// ReachRequest is the query string of GET /v1/reach; root repeats.
type ReachRequest struct {
	Roots []string `form:"root" binding:"required,min=1"`
}

// ReachResponse is returned by GET /v1/reach.
type ReachResponse struct {
	Roots     []string `json:"roots"`
	Reached   int      `json:"reached"`
	Unreached int      `json:"unreached"`
	Depth     int      `json:"depth"`
	Farthest  string   `json:"farthest"`
}

// QueryRequest is one entry of a batch.
type QueryRequest struct {
	Label   string `json:"label"`
	From    string `json:"from" binding:"required"`
	Through string `json:"through"`
	To      string `json:"to" binding:"required"`
}

// BatchRequest is the body of POST /v1/batch.
type BatchRequest struct {
	Queries []QueryRequest `json:"queries" binding:"required,min=1,max=1000,dive"`
}

// StatsResponse is returned by GET /v1/stats.
type StatsResponse struct {
	Vertices     int `json:"vertices"`
	Edges        int `json:"edges"`
	Skipped      int `json:"skipped"`
	Components   int `json:"components"`
	MaxOutDegree int `json:"max_out_degree"`
}

// HealthResponse is returned by GET /v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Ready   bool   `json:"ready"`
}

// ErrorResponse carries a failed request's message.
type ErrorResponse struct {
	Error string `json:"error"`
}
