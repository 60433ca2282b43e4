package payment

type Status string

const (
	StatusPending         Status = "PENDING"
	StatusCompleted       Status = "COMPLETED"
	StatusRefundInitiated Status = "REFUND_INITIATED"
	StatusFailed          Status = "FAILED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusRefundInitiated, StatusFailed:
		return true
	default:
		return false
	}
}

// IsClaimable reports whether a gateway capture may still move the payment
// to COMPLETED. FAILED is claimable so a late capture after expiry is honoured.
func (s Status) IsClaimable() bool {
	return s == StatusPending || s == StatusFailed
}

// ClaimableStatuses is IsClaimable as a list, for conditional updates.
func ClaimableStatuses() []Status {
	return []Status{StatusPending, StatusFailed}
}
