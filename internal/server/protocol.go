package server

import (
	"github.com/oklog/ulid/v2"

	"github.com/lox/pokereval/poker"
)

// Message types carried over the WebSocket.
const (
	TypeEval    = "eval"
	TypeCompare = "compare"
	TypeResult  = "result"
	TypeError   = "error"
)

// Request is a client message. Eval requests set Cards; compare requests set Hands.
type Request struct {
	Type  string   `json:"type,omitempty"`
	ID    string   `json:"id,omitempty"`
	Cards string   `json:"cards,omitempty"`
	Hands []string `json:"hands,omitempty"`
}

// HandResult describes one evaluated hand.
type HandResult struct {
	Cards   string   `json:"cards"`
	Rank    uint16   `json:"rank"`
	Type    string   `json:"type"`
	Best    []string `json:"best"`
	Percent float64  `json:"percentile"`
}

// Response answers a Request. Results holds one entry per evaluated hand and
// Winners the indexes of the strongest ones.
type Response struct {
	Type    string       `json:"type"`
	ID      string       `json:"id"`
	Results []HandResult `json:"results,omitempty"`
	Winners []int        `json:"winners,omitempty"`
	Error   string       `json:"error,omitempty"`
}

func newHandResult(cards string, res poker.Result) HandResult {
	best := make([]string, len(res.Best))
	for i, c := range res.Best {
		best[i] = c.String()
	}
	return HandResult{
		Cards:   cards,
		Rank:    uint16(res.Rank),
		Type:    res.Type.String(),
		Best:    best,
		Percent: res.Rank.Percentile(),
	}
}

// requestID returns the client-supplied ID or a fresh ULID.
func requestID(id string) string {
	if id != "" {
		return id
	}
	return ulid.Make().String()
}

func errorResponse(id string, err error) Response {
	return Response{Type: TypeError, ID: id, Error: err.Error()}
}
