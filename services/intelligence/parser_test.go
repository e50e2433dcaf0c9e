package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plansJSON = `{"plans":[{"id":"p1","title":"Dinner Night","theme":"fun","phases":[{"name":"Hotpot","description":"Shared hotpot","address":"123 Nguyen Hue, District 1","googleMapsLink":"","cost":250000,"isIndoor":true,"isOutdoor":false,"isVegetarianFriendly":true,"isAlcoholFriendly":false,"travelTime":null,"distance":null}],"totalCost":250000,"bestFor":["Alice"],"rating":4,"fitAnalysis":"Good fit"}]}`

func TestParsePlansBareObject(t *testing.T) {
	candidates := ParsePlans(plansJSON)
	require.Len(t, candidates, 1)
	assert.Equal(t, "p1", candidates[0].ID)
	assert.Equal(t, "Dinner Night", candidates[0].Title)
	require.Len(t, candidates[0].Phases, 1)
	assert.Equal(t, 250000, candidates[0].Phases[0].Cost)
	require.NotNil(t, candidates[0].Rating)
	assert.Equal(t, 4, *candidates[0].Rating)
}

func TestParsePlansFencedBlock(t *testing.T) {
	raw := "Here are your plans:\n```json\n" + plansJSON + "\n```\nEnjoy!"
	fenced := ParsePlans(raw)
	bare := ParsePlans(plansJSON)
	assert.Equal(t, bare, fenced)
}

func TestParsePlansWrappedInProse(t *testing.T) {
	raw := "Sure! Based on the team profile I suggest: " + plansJSON + " Let me know if you need more."
	candidates := ParsePlans(raw)
	require.Len(t, candidates, 1)
	assert.Equal(t, "fun", candidates[0].Theme)
}

func TestParsePlansBareArray(t *testing.T) {
	raw := `[{"id":"p2","title":"Cafe","theme":"chill","phases":[{"name":"Coffee","cost":100000}],"totalCost":100000},` +
		`{"id":"p3","title":"Walk","theme":"chill","phases":[{"name":"Park","cost":0}],"totalCost":0}]`
	candidates := ParsePlans(raw)
	require.Len(t, candidates, 2)
	assert.Equal(t, "p2", candidates[0].ID)
	assert.Nil(t, candidates[0].Rating)
	assert.Equal(t, "p3", candidates[1].ID)
}

func TestParsePlansUnparseableText(t *testing.T) {
	for _, raw := range []string{
		"",
		"I could not generate any plans, sorry.",
		"{not json at all}",
		"```json\n{broken\n```",
	} {
		assert.Empty(t, ParsePlans(raw), "input: %q", raw)
	}
}

func TestParsePlansUnrecognizedShape(t *testing.T) {
	// Valid JSON objects without a plans key are a total parse failure.
	assert.Empty(t, ParsePlans(`{"suggestions":[{"id":"x"}]}`))
	assert.Empty(t, ParsePlans(`"just a string"`))
}

func TestParsePlansNeverPatchesWrongShape(t *testing.T) {
	// A well-formed object of the wrong shape must not be mined for an
	// embedded array; the whole response is discarded.
	raw := `The plans are attached. {"suggestions":[{"id":"x","title":"Smuggled",` +
		`"phases":[{"name":"A","cost":100000}]}],"note":"enjoy"}`
	assert.Empty(t, ParsePlans(raw))
}

func TestParsePlansMissingFieldsTolerated(t *testing.T) {
	raw := `{"plans":[{"title":"Minimal","phases":[{"name":"Walk","cost":0}]}]}`
	candidates := ParsePlans(raw)
	require.Len(t, candidates, 1)
	assert.Empty(t, candidates[0].ID)
	assert.Nil(t, candidates[0].Rating)
	assert.Empty(t, candidates[0].BestFor)
}
