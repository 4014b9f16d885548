package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSelectsEverything(t *testing.T) {
	s := New([]string{"10", "2", "", "a"})

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"2", "10", "a"}, s.IDs())
}

func TestToggle(t *testing.T) {
	s := New([]string{"1", "2"})

	assert.False(t, s.Toggle("1"))
	assert.Equal(t, []string{"2"}, s.IDs())
	assert.True(t, s.Toggle("1"))
	assert.Equal(t, []string{"1", "2"}, s.IDs())

	assert.False(t, s.Toggle("99"))
	assert.False(t, s.Contains("99"))
	assert.Equal(t, 2, s.Len())
}

func TestSelectAndDeselect(t *testing.T) {
	s := New([]string{"1", "2"})

	s.Deselect("2")
	assert.False(t, s.Contains("2"))
	s.Select("2")
	assert.True(t, s.Contains("2"))
	s.Select("3")
	assert.False(t, s.Contains("3"))
}

func TestRemoveLeavesNoDanglingId(t *testing.T) {
	s := New([]string{"1", "2"})

	s.Remove("1")

	assert.False(t, s.Known("1"))
	assert.False(t, s.Contains("1"))
	assert.False(t, s.Toggle("1"))
	assert.Equal(t, []string{"2"}, s.IDs())
}

func TestEmptyInventory(t *testing.T) {
	s := New(nil)

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.IDs())
}
