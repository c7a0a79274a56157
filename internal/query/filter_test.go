package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubbot-engine/internal/domain"
)

func queryFixture() []domain.Record {
	return []domain.Record{
		{
			Type: domain.TypeJob, Title: "Backend Engineer", Company: "Initech",
			Description: "Go services, on-site", Location: []string{"Boston, MA"},
			WhenDate: "01/15/2027",
		},
		{
			Type: domain.TypeJob, Title: "Frontend Engineer", Company: "Globex",
			Description: "React work, remote ok", Location: []string{"Remote"},
			WhenDate: "02/01/2027",
		},
		{
			Type: domain.TypeInternship, Title: "Software Intern", Company: "Initech",
			Description: "Summer internship program", Location: []string{"Boston, MA"},
			WhenDate: "Unknown",
		},
	}
}

func TestFilter_EmptySpecIsIdentity(t *testing.T) {
	records := queryFixture()
	got := Filter(records, Spec{})
	assert.Equal(t, records, got)
}

func TestFilter_SingleSlot(t *testing.T) {
	got := Filter(queryFixture(), Spec{Company: "initech"})
	require.Len(t, got, 2)
	for _, rec := range got {
		assert.Equal(t, "Initech", rec.Company)
	}
}

func TestFilter_SlotsAreANDed(t *testing.T) {
	got := Filter(queryFixture(), Spec{Company: "initech", Season: "summer"})
	require.Len(t, got, 1)
	assert.Equal(t, "Software Intern", got[0].Title)
}

func TestFilter_GeneralSearchIncludesOnAnyTerm(t *testing.T) {
	records := []domain.Record{
		{Type: domain.TypeJob, Title: "Cat Cafe Attendant"},
		{Type: domain.TypeJob, Title: "Dog Walker"},
	}

	// Only one of the two terms hits, which is enough to include.
	got := Filter(records, Spec{GeneralSearch: "cat behavior"})
	require.Len(t, got, 1)
	assert.Equal(t, "Cat Cafe Attendant", got[0].Title)

	assert.Empty(t, Filter(records, Spec{GeneralSearch: "lizard behavior"}))
}

func TestFilter_GeneralSearchRanksFullMatchesFirst(t *testing.T) {
	records := []domain.Record{
		{Type: domain.TypeJob, Title: "Remote Helpdesk", Description: "phones all day"},
		{Type: domain.TypeJob, Title: "Frontend Engineer", Description: "React work, remote ok"},
	}

	got := Filter(records, Spec{GeneralSearch: "remote react"})
	require.Len(t, got, 2)
	// Both terms hit the second record, only one hits the first.
	assert.Equal(t, "Frontend Engineer", got[0].Title)
	assert.Equal(t, "Remote Helpdesk", got[1].Title)
}

func TestFilter_RanksByFieldCoverage(t *testing.T) {
	records := []domain.Record{
		{Type: domain.TypeJob, Title: "Analyst", Description: "python scripts"},
		{Type: domain.TypeJob, Title: "Python Developer", Description: "python all day", Company: "Python Labs"},
	}

	got := Filter(records, Spec{GeneralSearch: "python"})
	require.Len(t, got, 2)
	// The record where the term appears in more fields ranks first.
	assert.Equal(t, "Python Developer", got[0].Title)
}

func TestFilter_TiesKeepEncounterOrder(t *testing.T) {
	records := []domain.Record{
		{Type: domain.TypeJob, Title: "First remote role"},
		{Type: domain.TypeJob, Title: "Second remote role"},
	}

	got := Filter(records, Spec{GeneralSearch: "remote"})
	require.Len(t, got, 2)
	assert.Equal(t, "First remote role", got[0].Title)
	assert.Equal(t, "Second remote role", got[1].Title)
}

func TestFilter_LocationMatchesJoinedTokens(t *testing.T) {
	records := []domain.Record{
		{Type: domain.TypeJob, Title: "Hybrid Role", Location: []string{"Boston, MA", "Remote"}},
	}

	assert.Len(t, Filter(records, Spec{Location: "remote"}), 1)
	assert.Len(t, Filter(records, Spec{Location: "boston"}), 1)
	assert.Empty(t, Filter(records, Spec{Location: "denver"}))
}
