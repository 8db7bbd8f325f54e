/*
dto.go - JSON shapes for the reporting API

PURPOSE:
  Decouples the engine's Report from the wire contract so fields can be
  renamed or versioned without touching the aggregation code. DTOs are
  pure data carriers; conversion lives here, validation in handlers.
*/
package api

import (
	"github.com/abcampus/finance-engine/analytics"
	"github.com/abcampus/finance-engine/ledger"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ReportDTO mirrors analytics.Report on the wire. Monetary values are
// integers in the smallest currency unit; repayment_rate is an integer
// percentage.
type ReportDTO struct {
	Period PeriodDTO `json:"period"`

	TotalUsers     int `json:"total_users"`
	TotalLoans     int `json:"total_loans"`
	ActiveLoans    int `json:"active_loans"`
	CompletedLoans int `json:"completed_loans"`
	PendingLoans   int `json:"pending_loans"`
	RejectedLoans  int `json:"rejected_loans"`

	TotalLoanAmount     int64 `json:"total_loan_amount"`
	TotalPaidAmount     int64 `json:"total_paid_amount"`
	InterestCollected   int64 `json:"interest_collected"`
	InterestOutstanding int64 `json:"interest_outstanding"`
	RepaymentRate       int   `json:"repayment_rate"`
	AverageLoanAmount   int64 `json:"average_loan_amount"`

	LoansCreatedInPeriod   int   `json:"loans_created_in_period"`
	LoansValidatedInPeriod int   `json:"loans_validated_in_period"`
	PaymentsInPeriod       int   `json:"payments_in_period"`
	PaymentsAmountInPeriod int64 `json:"payments_amount_in_period"`

	Activity           []ActivityPointDTO    `json:"activity"`
	StatusDistribution StatusDistributionDTO `json:"status_distribution"`
	InterestByMonth    []InterestPointDTO    `json:"interest_by_month"`
	TopBorrowers       []BorrowerRankDTO     `json:"top_borrowers"`

	ActiveSavingsPlans  int   `json:"active_savings_plans"`
	TotalSavingsBalance int64 `json:"total_savings_balance"`
}

// PeriodDTO echoes the resolved range back to the caller.
type PeriodDTO struct {
	Token string `json:"token"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type ActivityPointDTO struct {
	Bucket         string `json:"bucket"`
	LoansCreated   int    `json:"loans_created"`
	LoansApproved  int    `json:"loans_approved"`
	PaymentsCount  int    `json:"payments_count"`
	PaymentsAmount int64  `json:"payments_amount"`
}

type StatusDistributionDTO struct {
	Pending   int `json:"pending"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Rejected  int `json:"rejected"`
}

type InterestPointDTO struct {
	Month    string `json:"month"`
	Interest int64  `json:"interest"`
}

type BorrowerRankDTO struct {
	UserID         string `json:"user_id"`
	TotalPrincipal int64  `json:"total_principal"`
	LoansCount     int    `json:"loans_count"`
	CompletedLoans int    `json:"completed_loans"`
}

// ClientReportDTO is the client-dashboard payload: the user-scoped report
// plus the user's loyalty score and primary savings plan.
type ClientReportDTO struct {
	ReportDTO
	LoyaltyScore   int             `json:"loyalty_score"`
	PrimarySavings *SavingsPlanDTO `json:"primary_savings,omitempty"`
}

type SavingsPlanDTO struct {
	ID             string `json:"id"`
	CurrentBalance int64  `json:"current_balance"`
	TargetAmount   int64  `json:"target_amount"`
	Status         string `json:"status"`
}

type LoyaltyDTO struct {
	UserID string `json:"user_id"`
	Score  int    `json:"score"`
	Max    int    `json:"max"`
}

// LoanScheduleDTO is the per-loan repayment summary.
type LoanScheduleDTO struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	Principal      int64  `json:"principal"`
	InterestRate   string `json:"interest_rate"`
	Interest       int64  `json:"interest"`
	TotalRepayable int64  `json:"total_repayable"`
	Status         string `json:"status"`
	// Absent for loans that were never approved.
	DueDate *string `json:"due_date,omitempty"`
	PastDue bool    `json:"past_due"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toReportDTO(r analytics.Report) ReportDTO {
	dto := ReportDTO{
		Period: PeriodDTO{
			Token: string(r.Period.Token),
			Start: r.Period.Start.Format("2006-01-02"),
			End:   r.Period.End.Format("2006-01-02"),
		},
		TotalUsers:             r.TotalUsers,
		TotalLoans:             r.TotalLoans,
		ActiveLoans:            r.ActiveLoans,
		CompletedLoans:         r.CompletedLoans,
		PendingLoans:           r.PendingLoans,
		RejectedLoans:          r.RejectedLoans,
		TotalLoanAmount:        r.TotalLoanAmount,
		TotalPaidAmount:        r.TotalPaidAmount,
		InterestCollected:      r.InterestCollected,
		InterestOutstanding:    r.InterestOutstanding,
		RepaymentRate:          r.RepaymentRate,
		AverageLoanAmount:      r.AverageLoanAmount,
		LoansCreatedInPeriod:   r.LoansCreatedInPeriod,
		LoansValidatedInPeriod: r.LoansValidatedInPeriod,
		PaymentsInPeriod:       r.PaymentsInPeriod,
		PaymentsAmountInPeriod: r.PaymentsAmountInPeriod,
		StatusDistribution: StatusDistributionDTO{
			Pending:   r.StatusDistribution.Pending,
			Active:    r.StatusDistribution.Active,
			Completed: r.StatusDistribution.Completed,
			Rejected:  r.StatusDistribution.Rejected,
		},
		ActiveSavingsPlans:  r.ActiveSavingsPlans,
		TotalSavingsBalance: r.TotalSavingsBalance,
	}

	dto.Activity = make([]ActivityPointDTO, len(r.Activity))
	for i, p := range r.Activity {
		dto.Activity[i] = ActivityPointDTO{
			Bucket:         p.Bucket,
			LoansCreated:   p.LoansCreated,
			LoansApproved:  p.LoansApproved,
			PaymentsCount:  p.PaymentsCount,
			PaymentsAmount: p.PaymentsAmount,
		}
	}

	dto.InterestByMonth = make([]InterestPointDTO, len(r.InterestByMonth))
	for i, p := range r.InterestByMonth {
		dto.InterestByMonth[i] = InterestPointDTO{Month: p.Month, Interest: p.Interest}
	}

	dto.TopBorrowers = make([]BorrowerRankDTO, len(r.TopBorrowers))
	for i, b := range r.TopBorrowers {
		dto.TopBorrowers[i] = BorrowerRankDTO{
			UserID:         b.UserID,
			TotalPrincipal: b.TotalPrincipal,
			LoansCount:     b.LoansCount,
			CompletedLoans: b.CompletedLoans,
		}
	}

	return dto
}

func toSavingsPlanDTO(sp ledger.SavingsPlan) *SavingsPlanDTO {
	return &SavingsPlanDTO{
		ID:             sp.ID,
		CurrentBalance: sp.CurrentBalance,
		TargetAmount:   sp.TotalAmountTarget,
		Status:         string(sp.Status),
	}
}
