package model

// Repository is one raw repository entry from the upstream. Forked
// repositories never appear in aggregated output.
type Repository struct {
	Name string `json:"name"`
	Fork bool   `json:"fork"`
}
