package model

import (
	"time"

	"finance/internal/domain/entity"
)

// TransactionTypeEnum is the Postgres enum backing category and transaction types.
const TransactionTypeEnum = "transaction_type"

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID              int64                  `gorm:"primaryKey;autoIncrement"`
	Title           string                 `gorm:"type:varchar(50);not null"`
	TransactionType entity.TransactionType `gorm:"column:transaction_type;type:transaction_type;not null"`

	Transactions []TransactionModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// TransactionModel mirrors the 'transactions' table.
type TransactionModel struct {
	ID          int64                  `gorm:"primaryKey;autoIncrement"`
	UserID      int64                  `gorm:"not null"`
	CategoryID  *int64                 `gorm:"column:category_id"`
	Description string                 `gorm:"type:varchar(50);not null"`
	Type        entity.TransactionType `gorm:"type:transaction_type;not null"`
	Date        time.Time              `gorm:"type:date;not null"`
	Amount      string                 `gorm:"type:numeric(10,3);not null"`
	CreatedAt   time.Time              `gorm:"not null;default:now()"`
}

// TableName explicitly sets the table name for GORM.
func (TransactionModel) TableName() string {
	return "transactions"
}

// All lists every model in dependency order for schema bootstrap.
func All() []any {
	return []any{
		&UserModel{},
		&CategoryModel{},
		&TransactionModel{},
	}
}
