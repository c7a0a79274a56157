package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_BracketNotation(t *testing.T) {
	spec := Parse("[developer] [] [summer] [google] []")

	assert.Equal(t, "developer", spec.Role)
	assert.Equal(t, "", spec.Type)
	assert.Equal(t, "summer", spec.Season)
	assert.Equal(t, "google", spec.Company)
	assert.Equal(t, "", spec.Location)
	assert.Equal(t, "", spec.GeneralSearch)
}

func TestParse_BracketExtrasIgnored(t *testing.T) {
	spec := Parse("[a] [b] [c] [d] [e] [extra] [more]")
	assert.Equal(t, "a", spec.Role)
	assert.Equal(t, "e", spec.Location)
}

func TestParse_BracketPartial(t *testing.T) {
	spec := Parse("[] [internship]")
	assert.Equal(t, "", spec.Role)
	assert.Equal(t, "internship", spec.Type)
	assert.False(t, spec.Empty())
}

func TestParse_FlagNotation(t *testing.T) {
	spec := Parse("-r backend -l Boston remote friendly")

	assert.Equal(t, "backend", spec.Role)
	assert.Equal(t, "Boston", spec.Location)
	assert.Equal(t, "remote friendly", spec.GeneralSearch)
}

func TestParse_FlagsMixedWithGeneralTerms(t *testing.T) {
	spec := Parse("-c whiskers cat -l remote -t full-time behavior")

	assert.Equal(t, "whiskers", spec.Company)
	assert.Equal(t, "remote", spec.Location)
	assert.Equal(t, "full-time", spec.Type)
	assert.Equal(t, "", spec.Role)
	assert.Equal(t, "", spec.Season)
	// Non-flag tokens keep their original order.
	assert.Equal(t, "cat behavior", spec.GeneralSearch)
}

func TestParse_LongFlags(t *testing.T) {
	spec := Parse("--company Acme --season fall")
	assert.Equal(t, "Acme", spec.Company)
	assert.Equal(t, "fall", spec.Season)
}

func TestParse_FlagAtEndIsSkipped(t *testing.T) {
	spec := Parse("-r")
	assert.True(t, spec.Empty())
}

func TestParse_UnknownFlagDiscarded(t *testing.T) {
	spec := Parse("-x foo")
	assert.Equal(t, "", spec.Role)
	assert.Equal(t, "foo", spec.GeneralSearch)
}

func TestParse_PlainTextBecomesGeneralSearch(t *testing.T) {
	spec := Parse("machine   learning   jobs")
	assert.Equal(t, "machine learning jobs", spec.GeneralSearch)
}

func TestParse_Empty(t *testing.T) {
	assert.True(t, Parse("").Empty())
	assert.True(t, Parse("   ").Empty())
}

func TestSpec_ActiveFilters(t *testing.T) {
	spec := Spec{Role: "developer", Company: "Google"}
	assert.Equal(t, "role: developer, company: Google", spec.ActiveFilters())

	assert.Equal(t, "", Spec{}.ActiveFilters())
}
