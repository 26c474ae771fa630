package membership

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNode_Addr(t *testing.T) {
	assert.Equal(t, "127.0.0.1:5555", NewNode("127.0.0.1", 5555).Addr())
	assert.Equal(t, "[::1]:5555", NewNode("::1", 5555).Addr())
}

func TestWithout(t *testing.T) {
	self := NewNode("127.0.0.1", 5555)
	other := NewNode("127.0.0.1", 5556)

	assert.Equal(t, []Node{other}, Without([]Node{self, other, self}, self))
	assert.Empty(t, Without(nil, self))
}
