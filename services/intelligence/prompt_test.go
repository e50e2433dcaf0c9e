package intelligence

import (
	"strings"
	"testing"

	"teambond/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMembers() []models.TeamMember {
	return []models.TeamMember{
		{Name: "Alice", Vibe: models.VibeChill, Location: "District 2, Ho Chi Minh City",
			Preferences: []string{"coffee", "board games"}},
		{Name: "Bob", Vibe: models.VibeEnergetic, Location: "District 1, Ho Chi Minh City",
			Preferences: []string{"karaoke"}},
	}
}

func sampleHistory() []models.SavedEvent {
	return []models.SavedEvent{
		{Date: "2026-07-12", Theme: "fun", Activities: []string{"BBQ", "Karaoke"},
			Phases: make([]models.EventPhase, 3), TotalCost: 480000, Rating: 5},
		{Date: "2026-06-20", Theme: "fun", Activities: []string{"Hotpot"},
			Phases: make([]models.EventPhase, 1), TotalCost: 250000, Rating: 4},
		{Date: "2026-05-18", Theme: "chill", Activities: []string{"Cafe"},
			Phases: make([]models.EventPhase, 2), TotalCost: 200000, Rating: 3},
	}
}

func TestBuildUserPromptBasics(t *testing.T) {
	req := models.GenerationRequest{
		Theme:         "fun",
		Contribution:  100000,
		PreferredZone: "D1",
		PreferredDate: "Friday evening",
		Mode:          models.ModeNew,
	}
	prompt := BuildUserPrompt(req, sampleMembers(), nil)

	assert.Contains(t, prompt, `theme "fun"`)
	assert.Contains(t, prompt, "base budget: 300000")
	assert.Contains(t, prompt, "1-phase plan: total <= 300000")
	assert.Contains(t, prompt, "2-phase plan: total <= 450000")
	assert.Contains(t, prompt, "3-phase plan: total <= 500000")
	assert.Contains(t, prompt, "at most 2 km and 15 minutes apart")
	assert.Contains(t, prompt, "optional top-up contribution: 100000")
	assert.Contains(t, prompt, "Preferred area: D1")
	assert.Contains(t, prompt, "Preferred date/time: Friday evening")
}

func TestBuildUserPromptRosterBullets(t *testing.T) {
	prompt := BuildUserPrompt(models.GenerationRequest{Theme: "fun"}, sampleMembers(), nil)

	assert.Contains(t, prompt,
		"• Alice (Chill): District 2, Ho Chi Minh City - Prefers: coffee, board games")
	assert.Contains(t, prompt,
		"• Bob (Energetic): District 1, Ho Chi Minh City - Prefers: karaoke")
}

func TestBuildUserPromptOmitsZeroContribution(t *testing.T) {
	prompt := BuildUserPrompt(models.GenerationRequest{Theme: "fun"}, sampleMembers(), nil)
	assert.NotContains(t, prompt, "top-up contribution")
}

func TestBuildUserPromptModeNewOmitsHistory(t *testing.T) {
	digest := BuildHistoryDigest(sampleHistory())
	require.NotNil(t, digest)

	// Even with a digest in hand, mode new must not leak historical context.
	req := models.GenerationRequest{Theme: "fun", Mode: models.ModeNew}
	prompt := BuildUserPrompt(req, sampleMembers(), digest)

	assert.NotContains(t, prompt, "Recent team events")
	assert.NotContains(t, prompt, "Aggregate:")
	assert.NotContains(t, prompt, "2026-07-12")
}

func TestBuildUserPromptModeSimilarInjectsDigest(t *testing.T) {
	digest := BuildHistoryDigest(sampleHistory())
	req := models.GenerationRequest{Theme: "fun", Mode: models.ModeSimilar}
	prompt := BuildUserPrompt(req, sampleMembers(), digest)

	assert.Contains(t, prompt, "Recent team events:")
	assert.Contains(t, prompt, "2026-07-12 | fun | BBQ, Karaoke | 480000 VND | rated 5/5")
	assert.Contains(t, prompt, `most frequent theme "fun"`)
	assert.Contains(t, prompt, "similar in spirit")
	assert.NotContains(t, prompt, "structural pattern")
}

func TestBuildUserPromptModeReuseInjectsStructure(t *testing.T) {
	digest := BuildHistoryDigest(sampleHistory())
	req := models.GenerationRequest{Theme: "fun", Mode: models.ModeReuse}
	prompt := BuildUserPrompt(req, sampleMembers(), digest)

	assert.Contains(t, prompt, "Reuse the structural pattern")
	assert.Contains(t, prompt, `"fun" events ran 3 phases`)
	assert.Contains(t, prompt, `"chill" events ran 2 phases`)
}

func TestBuildSystemPromptFixesContract(t *testing.T) {
	system := BuildSystemPrompt()
	assert.Contains(t, system, `"plans"`)
	assert.Contains(t, system, "rating is an integer from 1 to 5")
	assert.Contains(t, system, "must be null for the first phase")
	assert.True(t, strings.Contains(system, "VND"))
}

func TestBuildHistoryDigest(t *testing.T) {
	digest := BuildHistoryDigest(sampleHistory())
	require.NotNil(t, digest)

	assert.Equal(t, "fun", digest.MostFrequentTheme)
	assert.InDelta(t, 310000.0, digest.MeanCost, 1e-9)
	assert.InDelta(t, 4.0, digest.MeanRating, 1e-9)
	assert.Equal(t, 3, digest.PhaseCountByTheme["fun"])
	assert.Equal(t, 2, digest.PhaseCountByTheme["chill"])
	assert.Len(t, digest.Events, 3)
}

func TestBuildHistoryDigestEmpty(t *testing.T) {
	assert.Nil(t, BuildHistoryDigest(nil))
	assert.Nil(t, BuildHistoryDigest([]models.SavedEvent{}))
}
