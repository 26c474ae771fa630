package domain

import (
	"errors"
	"math"
	"strconv"
)

var ErrInvalidMessageID = errors.New("message id must be a 32-bit integer")

// Message is one stored text record addressed by an integer id.
type Message struct {
	ID   int32  `json:"id"`
	Text string `json:"text"`
}

// ParseMessageID parses a decimal message id.
func ParseMessageID(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil || v < math.MinInt32 || v > math.MaxInt32 {
		return 0, ErrInvalidMessageID
	}
	return int32(v), nil
}
