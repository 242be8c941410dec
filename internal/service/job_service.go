package service

import (
	"context"
	"errors"
	"time"

	"gamecoins_bot/internal/domain"
	"gamecoins_bot/internal/logger"
	"gamecoins_bot/internal/metrics"
)

var (
	ErrUnknownJob    = errors.New("unknown job")
	ErrJobIneligible = errors.New("requirements not met")
	ErrNoJob         = errors.New("no job assigned")
	ErrOnCooldown    = errors.New("job on cooldown")
)

// JobOffer is a catalog job annotated with the user's live eligibility.
type JobOffer struct {
	Job      domain.Job `json:"job"`
	Eligible bool       `json:"eligible"`
	Current  bool       `json:"current"`
}

// WorkResult is the payroll breakdown of one shift. On ErrOnCooldown only
// Remaining is set.
type WorkResult struct {
	JobName    string        `json:"job_name"`
	BaseSalary int64         `json:"base_salary"`
	LevelBonus int64         `json:"level_bonus"`
	Total      int64         `json:"total"`
	NewBalance int64         `json:"new_balance"`
	Remaining  time.Duration `json:"-"`
}

func jobEligible(acc *domain.UserAccount, job domain.Job) bool {
	return acc.Level >= job.Requirements.MinLevel && acc.Coins >= job.Requirements.MinCoins
}

// Jobs returns the catalog with eligibility evaluated against the live
// account, never a cached snapshot.
func (e *EconomyService) Jobs(ctx context.Context, userID string) ([]JobOffer, error) {
	var out []JobOffer
	err := e.update(ctx, func(doc *domain.Document) error {
		acc := e.account(doc, userID)
		out = make([]JobOffer, 0, len(domain.JobCatalog))
		for _, j := range domain.JobCatalog {
			out = append(out, JobOffer{
				Job:      j,
				Eligible: jobEligible(acc, j),
				Current:  acc.Job == j.ID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AssignJob gives the user the job if they currently meet its requirements.
func (e *EconomyService) AssignJob(ctx context.Context, userID, jobID string) error {
	job, ok := domain.JobByID(jobID)
	if !ok {
		return ErrUnknownJob
	}

	err := e.update(ctx, func(doc *domain.Document) error {
		acc := e.account(doc, userID)
		if !jobEligible(acc, job) {
			return ErrJobIneligible
		}
		acc.Job = jobID
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("job assigned", "user", userID, "job", jobID)
	return nil
}

// Work pays one cooldown-gated shift: base salary with ±20% variance plus
// level*5 bonus. On cooldown nothing mutates and the result carries the
// remaining wait.
func (e *EconomyService) Work(ctx context.Context, userID string) (*WorkResult, error) {
	var res WorkResult
	err := e.update(ctx, func(doc *domain.Document) error {
		acc := e.account(doc, userID)

		job, ok := domain.JobByID(acc.Job)
		if acc.Job == "" || !ok {
			return ErrNoJob
		}

		now := e.now()
		if acc.LastWork != nil {
			if next := acc.LastWork.Add(job.Cooldown); now.Before(next) {
				res.Remaining = next.Sub(now)
				return ErrOnCooldown
			}
		}

		variance := 0.8 + e.rng.Float64()*0.4
		base := int64(float64(job.Salary) * variance)
		bonus := int64(acc.Level) * 5
		total := base + bonus

		res = WorkResult{
			JobName:    job.Name,
			BaseSalary: base,
			LevelBonus: bonus,
			Total:      total,
		}
		res.NewBalance = e.credit(doc, userID, total)

		acc.LastWork = &now
		doc.Economy.GlobalStats.TotalJobsCompleted++
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrOnCooldown) {
			return &res, err
		}
		return nil, err
	}

	metrics.ShiftsWorked.Inc()
	logger.Info("shift worked", "user", userID, "job", res.JobName, "earned", res.Total)
	return &res, nil
}
