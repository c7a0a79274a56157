package harvest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractLocations(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "remote keyword anywhere",
			text: "We are hiring! This role is fully remote.",
			want: []string{"Remote"},
		},
		{
			name: "telecommute counts as remote",
			text: "Telecommute options available",
			want: []string{"Remote"},
		},
		{
			name: "hybrid plus city state",
			text: "Hybrid schedule.\nLocation: Boston, MA",
			want: []string{"Boston, MA", "Hybrid"},
		},
		{
			name: "multiple city state pairs on one line",
			text: "Location: Austin, TX / Portland, OR",
			want: []string{"Austin, TX", "Portland, OR"},
		},
		{
			name: "invalid state code rejected",
			text: "Location: Springfield, ZZ",
			want: []string{"Unknown"},
		},
		{
			name: "too many words rejected",
			text: "Location: Main Office Downtown Boston, MA",
			want: []string{"Unknown"},
		},
		{
			name: "no location at all",
			text: "Great opportunity for a motivated student.",
			want: []string{"Unknown"},
		},
		{
			name: "empty input",
			text: "",
			want: []string{"Unknown"},
		},
		{
			name: "whitespace only",
			text: "   \n\t  ",
			want: []string{"Unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractLocations(tt.text))
		})
	}
}

func TestExtractLocations_Deduplicates(t *testing.T) {
	got := ExtractLocations("Remote work. Fully REMOTE. Did we mention remote?")
	assert.Equal(t, []string{"Remote"}, got)
}
