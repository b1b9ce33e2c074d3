package domain

// TestCard is a simulated card with a fixed outcome.
type TestCard struct {
	Number  string `json:"number"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

var testCards = []TestCard{
	{Number: "4916217501611292", Success: true, Message: "Payment completed successfully"},
	{Number: "5307732125531191", Success: true, Message: "Payment completed successfully"},
	{Number: "4024007194349121", Success: false, Message: "Insufficient funds"},
	{Number: "4929119799365646", Success: false, Message: "Transaction limit exceeded"},
}

// TestCards lists the simulated cards.
func TestCards() []TestCard {
	return append([]TestCard(nil), testCards...)
}

// Charge simulates authorizing the card. Unknown numbers are declined.
func Charge(card CardDetails) (TestCard, error) {
	number := card.Normalized()
	for _, tc := range testCards {
		if tc.Number != number {
			continue
		}
		if !tc.Success {
			return tc, &DeclineError{Reason: tc.Message}
		}
		return tc, nil
	}
	return TestCard{}, &DeclineError{Reason: DefaultDeclineReason}
}
