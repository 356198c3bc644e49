package discover

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenSet(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "plain comma list",
			raw:  "Action,Adventure",
			want: []string{"action", "adventure"},
		},
		{
			name: "whitespace padding and case",
			raw:  "  Action , ADVENTURE ,drama",
			want: []string{"action", "adventure", "drama"},
		},
		{
			name: "duplicates collapse",
			raw:  "Action,action, ACTION",
			want: []string{"action"},
		},
		{
			name: "empty tokens dropped",
			raw:  ",,Action,,,",
			want: []string{"action"},
		},
		{
			name: "empty input",
			raw:  "",
			want: nil,
		},
		{
			name: "only separators and spaces",
			raw:  " , , ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenSet(tt.raw)
			assert.Len(t, got, len(tt.want))
			for _, tok := range tt.want {
				assert.Contains(t, got, tok)
			}
		})
	}
}

func TestTokenListPreservesOrder(t *testing.T) {
	got := TokenList("Drama, Action ,drama,Comedy")
	assert.Equal(t, []string{"drama", "action", "comedy"}, got)
}

func TestTokenListEmpty(t *testing.T) {
	assert.Empty(t, TokenList(""))
	assert.Empty(t, TokenList(" , "))
}
