package models

import "time"

// LoanSource tells which book a loan belongs to: a registered merchant's own
// gold, or the guild treasury.
type LoanSource string

const (
	LoanSourceMerchant LoanSource = "merchant"
	LoanSourceGuild    LoanSource = "guild"
)

// Loan progresses linearly: waitingApproval → active → returned → completed,
// with rejected as the only branch (from waitingApproval).
type Loan struct {
	LoanID    string     `json:"loanId" bson:"loanId"`
	Source    LoanSource `json:"source" bson:"source"`
	Borrower  Borrower   `json:"borrower" bson:"borrower"`
	LenderUID string     `json:"lenderUid,omitempty" bson:"lenderUid,omitempty"`
	Amount    int64      `json:"amount" bson:"amount"`
	DueDate   *time.Time `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	Status    string     `json:"status" bson:"status"`
	DecidedBy string     `json:"decidedBy,omitempty" bson:"decidedBy,omitempty"`
	CreatedAt time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updated_at"`
}

type Borrower struct {
	UserID        string `json:"userid" bson:"userid"`
	CharacterName string `json:"characterName" bson:"characterName"`
}
