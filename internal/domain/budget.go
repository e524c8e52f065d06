package domain

import "time"

// BudgetStatus mirrors the subset of reservation statuses a chat-embedded
// budget payload can carry
type BudgetStatus string

const (
	BudgetPending   BudgetStatus = "pending"
	BudgetConfirmed BudgetStatus = "confirmed"
	BudgetRejected  BudgetStatus = "rejected"
)

// BudgetPayload is the negotiated quote embedded in a chat message.
// It is not a first-class stored entity: the chat store owns it, and this
// core only reads it on confirmation and writes its status back best-effort.
type BudgetPayload struct {
	ServiceName  string
	Price        float64
	Currency     string
	ProposedDate time.Time
	Notes        *string
	Status       BudgetStatus
}
