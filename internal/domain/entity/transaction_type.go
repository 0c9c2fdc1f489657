package entity

// TransactionType tells whether money comes in or goes out.
type TransactionType string

const (
	// TransactionTypeIncome marks money received.
	TransactionTypeIncome TransactionType = "income"
	// TransactionTypeExpense marks money spent.
	TransactionTypeExpense TransactionType = "expense"
)

// String returns the string representation of the TransactionType.
func (t TransactionType) String() string {
	return string(t)
}

// IsValid checks if the TransactionType is a known value.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	default:
		return false
	}
}
