package solutions

import "github.com/ixome/troubleshooter/internal/models"

// Default is returned for the unknown category and for any category
// missing from the catalog.
const Default = "Issue not recognized. Please provide more details."

// catalog holds the canned resolution for each recognized issue. These are
// the answers of record when the similarity index is unavailable.
var catalog = map[models.Issue]string{
	models.IssueNoSound:        "Please check if the sound system is turned on and cables are connected.",
	models.IssueTVNotTurningOn: "Please check the power cable and ensure the TV is plugged in.",
	models.IssueSettings:       "Navigate to the settings menu and verify the correct input source is selected.",
	models.IssueErrorCode:      "The flashing light indicates an error; please note the pattern and consult the device manual.",
}

// Lookup returns the canned solution for an issue, or Default when the
// issue has no catalog entry.
func Lookup(issue models.Issue) string {
	if s, ok := catalog[issue]; ok {
		return s
	}
	return Default
}
