// Package model holds the GORM persistence models. They mirror table layouts
// and are mapped to domain entities by the repositories.
package model

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Email    string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Password string `gorm:"type:varchar(255);not null"`
	FullName string `gorm:"column:full_name;type:varchar(50);not null"`

	Transactions []TransactionModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
