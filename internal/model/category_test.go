package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory_Keywords(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: nil},
		{name: "single", raw: "coffee", want: []string{"coffee"}},
		{name: "trims whitespace", raw: " coffee , tea,juice ", want: []string{"coffee", "tea", "juice"}},
		{name: "drops empty entries", raw: "coffee,,  ,tea", want: []string{"coffee", "tea"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Category{RawKeywords: tt.raw}.Keywords()
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
