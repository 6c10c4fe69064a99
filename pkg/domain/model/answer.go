package model

// Answer is the shaped response of one query orchestration.
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
