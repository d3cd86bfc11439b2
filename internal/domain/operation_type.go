package domain

// OperationKind classifies an operation type as income or expense.
type OperationKind int

const (
	KindIncome  OperationKind = 1 // Money coming in
	KindExpense OperationKind = 2 // Money going out
)

// Valid reports whether the kind is one of the known values.
func (k OperationKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// String returns the kind name for logs and reports.
func (k OperationKind) String() string {
	switch k {
	case KindIncome:
		return "income"
	case KindExpense:
		return "expense"
	default:
		return "unknown"
	}
}

// OperationType is a user-defined operation category (e.g. "Groceries"),
// unique per (user, kind, name) among non-deleted types.
type OperationType struct {
	ID        uint          `gorm:"primaryKey" json:"id"`          // Primary key
	UserID    uint          `gorm:"not null;index" json:"user_id"` // Foreign key to User
	Name      string        `gorm:"size:64;not null" json:"name"`  // Category name
	Kind      OperationKind `gorm:"not null" json:"kind"`          // Income or Expense
	IsDeleted bool          `gorm:"not null;default:false;index" json:"-"`
}
