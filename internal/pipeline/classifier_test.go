package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ixome/troubleshooter/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.Issue
	}{
		{"no sound phrase", "My TV has no sound.", models.IssueNoSound},
		{"sound not working", "the sound not working again", models.IssueNoSound},
		{"surround sound", "my surround sound is acting up", models.IssueNoSound},
		{"audio issue", "I have an audio issue", models.IssueNoSound},
		{"tv not turning on", "help, TV not turning on", models.IssueTVNotTurningOn},
		{"settings", "how do I change the settings?", models.IssueSettings},
		{"flashing light", "there is a flashing light on the box", models.IssueErrorCode},
		{"error code", "screen shows error code 105", models.IssueErrorCode},
		{"uppercase input", "NO SOUND AT ALL", models.IssueNoSound},
		{"gibberish", "random gibberish", models.IssueUnknown},
		{"empty text", "", models.IssueUnknown},
		{"sentinel text", NoAudioDataProvided, models.IssueUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

// Rule order decides when phrase sets overlap, not phrase specificity.
func TestClassifyRulePrecedence(t *testing.T) {
	assert.Equal(t, models.IssueSettings, Classify("settings error code"))
	assert.Equal(t, models.IssueNoSound, Classify("no sound after changing settings"))
	assert.Equal(t, models.IssueNoSound, Classify("audio issue and flashing light"))
}

func TestClassifyIsDeterministic(t *testing.T) {
	const text = "my tv has no sound and the settings look wrong"
	first := Classify(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(text))
	}
}
