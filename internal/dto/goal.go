package dto

import "github.com/GregMSThompson/finance-tracker/internal/models"

type CreateSavingsGoalRequest struct {
	Name         string    `json:"name"`
	TargetAmount *float64  `json:"target_amount"`
	Deadline     *DateTime `json:"deadline"`
}

type SavingsGoalView struct {
	models.SavingsGoal
	Progress float64 `json:"progress"` // percent of target reached
}
