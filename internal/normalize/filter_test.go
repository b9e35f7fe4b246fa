package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesKeyword(t *testing.T) {
	assert.True(t, MatchesKeyword("python", "Senior Engineer", "Acme", "python django"))
	assert.True(t, MatchesKeyword("PYTHON", "python developer"))
	assert.False(t, MatchesKeyword("rust", "Go engineer", "Acme"))
	assert.True(t, MatchesKeyword("  ", "anything"))
}

func TestPaginate(t *testing.T) {
	items := make([]int, 60)
	for i := range items {
		items[i] = i
	}

	first := Paginate(items, 0, 25)
	assert.Len(t, first, 25)
	assert.Equal(t, 0, first[0])

	second := Paginate(items, 25, 25)
	assert.Len(t, second, 25)
	assert.Equal(t, 25, second[0])

	third := Paginate(items, 50, 25)
	assert.Len(t, third, 10)

	assert.Empty(t, Paginate(items, 75, 25))
	assert.Len(t, Paginate(items, -5, 0), 60)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 25))
	assert.Equal(t, 25, Offset(2, 25))
	assert.Equal(t, 20, Offset(3, 10))
	assert.Equal(t, 0, Offset(0, 10))
	assert.Equal(t, 0, Offset(5, 0))
	assert.Equal(t, math.MaxInt, Offset(math.MaxInt/25+2, 25))
	assert.Equal(t, math.MaxInt, Offset(math.MaxInt, 10))
	assert.Empty(t, Paginate([]int{1, 2, 3}, Offset(math.MaxInt, 25), 25))
}

func TestHTMLText(t *testing.T) {
	in := `<p>We use <b>Python</b> &amp; Go.</p><script>var x = "rust";</script><ul><li>Remote</li></ul>`
	got := HTMLText(in)
	assert.Equal(t, "We use Python & Go. Remote", got)
	assert.Equal(t, "plain text", HTMLText("  plain   text "))
}
