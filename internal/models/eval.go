package models

// EvalsPage is one page of a jobset's evaluation listing as served by the
// Hydra JSON API. First, Last and Next hold pagination suffixes in the form
// "?page=N"; Next is empty on the final page.
type EvalsPage struct {
	First string `json:"first"`
	Last  string `json:"last"`
	Next  string `json:"next"`
	Evals []Eval `json:"evals"`
}

type Eval struct {
	ID     int64                `json:"id"`
	Inputs map[string]EvalInput `json:"jobsetevalinputs"`
}

type EvalInput struct {
	Type     string `json:"type"`
	URI      string `json:"uri"`
	Revision string `json:"revision"`
}
