package domain

// Task is a static daily-quest definition. Progress toward it lives on the
// account in DailyTasks, keyed by Task.ID, and resets once per calendar day.
type Task struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Reward int64  `json:"reward"`
	Target int    `json:"target"`
}

// DailyTaskCatalog lists every daily task. New entries are back-filled into
// existing accounts on the next read, so appending here is safe mid-period.
var DailyTaskCatalog = []Task{
	{ID: "send_messages", Name: "Send 10 messages", Reward: 50, Target: 10},
	{ID: "use_commands", Name: "Use 5 commands", Reward: 30, Target: 5},
	{ID: "react_messages", Name: "React to 15 messages", Reward: 40, Target: 15},
	{ID: "play_minigames", Name: "Play 5 minigames", Reward: 75, Target: 5},
	{ID: "send_many_messages", Name: "Send 50 messages", Reward: 120, Target: 50},
}

// TaskPlayMinigames is the task fed by every resolved minigame.
const TaskPlayMinigames = "play_minigames"

// TaskByID looks up a task in the static catalog.
func TaskByID(id string) (Task, bool) {
	for _, t := range DailyTaskCatalog {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}
