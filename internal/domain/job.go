package domain

import "time"

// Job is a static catalog entry users can apply for once they meet its
// requirements. Payouts are cooldown-gated per account via LastWork.
type Job struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Salary      int64           `json:"salary"`
	Cooldown    time.Duration   `json:"cooldown"`
	Requirements JobRequirements `json:"requirements"`
}

// JobRequirements gate job eligibility. Both are re-checked on every
// assignment attempt against the live account.
type JobRequirements struct {
	MinLevel int   `json:"min_level"`
	MinCoins int64 `json:"min_coins"`
}

// JobCatalog lists every job users can hold.
var JobCatalog = []Job{
	{
		ID:          "moderator_helper",
		Name:        "Moderator Helper",
		Description: "Report infractions and help keep order",
		Salary:      200,
		Cooldown:    4 * time.Hour,
		Requirements: JobRequirements{MinLevel: 5},
	},
	{
		ID:          "event_organizer",
		Name:        "Event Organizer",
		Description: "Organize and run server events",
		Salary:      300,
		Cooldown:    6 * time.Hour,
		Requirements: JobRequirements{MinLevel: 10, MinCoins: 500},
	},
	{
		ID:          "content_creator",
		Name:        "Content Creator",
		Description: "Create gaming content for the community",
		Salary:      400,
		Cooldown:    8 * time.Hour,
		Requirements: JobRequirements{MinLevel: 15, MinCoins: 1000},
	},
	{
		ID:          "beta_tester",
		Name:        "Beta Tester",
		Description: "Try out new bot features before release",
		Salary:      250,
		Cooldown:    5 * time.Hour,
		Requirements: JobRequirements{MinLevel: 8, MinCoins: 300},
	},
}

// JobByID looks up a job in the static catalog.
func JobByID(id string) (Job, bool) {
	for _, j := range JobCatalog {
		if j.ID == id {
			return j, true
		}
	}
	return Job{}, false
}
