package service

import (
	"context"
	"errors"

	"gamecoins_bot/internal/domain"
	"gamecoins_bot/internal/logger"
	"gamecoins_bot/internal/metrics"
)

var (
	ErrUnknownTask    = errors.New("unknown task")
	ErrNothingToClaim = errors.New("task not completed or already claimed")
)

// TaskStatus pairs a catalog task with the user's progress in the current
// reset period.
type TaskStatus struct {
	Task      domain.Task `json:"task"`
	Progress  int         `json:"progress"`
	Completed bool        `json:"completed"`
	Claimed   bool        `json:"claimed"`
}

// resetDailyTasks wipes task progress when the stored reset date is not
// today and back-fills catalog tasks missing from the user's map, so tasks
// added to the catalog show up mid-period. Idempotent within one day.
func (e *EconomyService) resetDailyTasks(acc *domain.UserAccount) {
	today := e.now().Format("2006-01-02")

	if acc.LastDaily != today {
		acc.DailyTasks = make(map[string]*domain.TaskProgress, len(domain.DailyTaskCatalog))
		acc.LastDaily = today
	}
	for _, t := range domain.DailyTaskCatalog {
		if _, ok := acc.DailyTasks[t.ID]; !ok {
			acc.DailyTasks[t.ID] = &domain.TaskProgress{}
		}
	}
}

// advanceTask bumps a task's counter, clamping at the target and flipping
// completed when reached. No-op once completed.
func (e *EconomyService) advanceTask(acc *domain.UserAccount, taskID string, amount int) bool {
	task, ok := domain.TaskByID(taskID)
	if !ok {
		return false
	}
	prog, ok := acc.DailyTasks[taskID]
	if !ok || prog.Completed {
		return false
	}

	prog.Progress += amount
	if prog.Progress >= task.Target {
		prog.Progress = task.Target
		prog.Completed = true
	}
	return true
}

// DailyTasks returns the user's tasks for today, resetting lazily on the
// first call after a day boundary.
func (e *EconomyService) DailyTasks(ctx context.Context, userID string) ([]TaskStatus, error) {
	var out []TaskStatus
	err := e.update(ctx, func(doc *domain.Document) error {
		acc := e.account(doc, userID)
		e.resetDailyTasks(acc)

		out = make([]TaskStatus, 0, len(domain.DailyTaskCatalog))
		for _, t := range domain.DailyTaskCatalog {
			prog := acc.DailyTasks[t.ID]
			out = append(out, TaskStatus{
				Task:      t,
				Progress:  prog.Progress,
				Completed: prog.Completed,
				Claimed:   prog.Claimed,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateTaskProgress advances a task by amount on behalf of the chat
// collaborator (messages sent, commands used, reactions). Returns false
// without error when the task is already completed.
func (e *EconomyService) UpdateTaskProgress(ctx context.Context, userID, taskID string, amount int) (bool, error) {
	if _, ok := domain.TaskByID(taskID); !ok {
		return false, ErrUnknownTask
	}
	if amount <= 0 {
		return false, ErrInvalidAmount
	}

	var advanced bool
	err := e.update(ctx, func(doc *domain.Document) error {
		acc := e.account(doc, userID)
		e.resetDailyTasks(acc)
		advanced = e.advanceTask(acc, taskID, amount)
		return nil
	})
	return advanced, err
}

// ClaimTaskReward pays out a completed task exactly once per reset period.
// The claimed flag, not deletion, blocks re-claims.
func (e *EconomyService) ClaimTaskReward(ctx context.Context, userID, taskID string) (int64, error) {
	task, ok := domain.TaskByID(taskID)
	if !ok {
		return 0, ErrUnknownTask
	}

	err := e.update(ctx, func(doc *domain.Document) error {
		acc := e.account(doc, userID)
		e.resetDailyTasks(acc)

		prog := acc.DailyTasks[taskID]
		if !prog.Completed || prog.Claimed {
			return ErrNothingToClaim
		}
		prog.Claimed = true
		e.credit(doc, userID, task.Reward)
		return nil
	})
	if err != nil {
		return 0, err
	}

	metrics.TaskClaims.Inc()
	logger.Info("task reward claimed", "user", userID, "task", taskID, "reward", task.Reward)
	return task.Reward, nil
}
