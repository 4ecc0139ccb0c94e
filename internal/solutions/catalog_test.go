package solutions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ixome/troubleshooter/internal/models"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		issue models.Issue
		want  string
	}{
		{models.IssueNoSound, "Please check if the sound system is turned on and cables are connected."},
		{models.IssueTVNotTurningOn, "Please check the power cable and ensure the TV is plugged in."},
		{models.IssueSettings, "Navigate to the settings menu and verify the correct input source is selected."},
		{models.IssueErrorCode, "The flashing light indicates an error; please note the pattern and consult the device manual."},
		{models.IssueUnknown, Default},
		{models.Issue("never_seen"), Default},
	}

	for _, tt := range tests {
		t.Run(string(tt.issue), func(t *testing.T) {
			assert.Equal(t, tt.want, Lookup(tt.issue))
		})
	}
}
