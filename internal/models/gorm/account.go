package gorm

import (
	"time"

	"journal-transporter/transporter/internal/constants"
)

type Account struct {
	Record
	Email       string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Username    string    `gorm:"column:username;uniqueIndex" json:"username"`
	FirstName   string    `gorm:"column:first_name" json:"first_name"`
	MiddleName  string    `gorm:"column:middle_name" json:"middle_name"`
	LastName    string    `gorm:"column:last_name" json:"last_name"`
	Salutation  string    `gorm:"column:salutation" json:"salutation"`
	Institution string    `gorm:"column:institution" json:"institution"`
	Department  string    `gorm:"column:department" json:"department"`
	Country     string    `gorm:"column:country" json:"country"`
	Biography   string    `gorm:"column:biography" json:"biography"`
	Signature   string    `gorm:"column:signature" json:"signature"`
	Orcid       string    `gorm:"column:orcid" json:"orcid"`
	IsActive    bool      `gorm:"column:is_active;default:false" json:"is_active"`
	DateJoined  time.Time `gorm:"column:date_joined;autoCreateTime" json:"date_joined"`
}

func (Account) TableName() string {
	return "core_account"
}

type Country struct {
	Record
	Code string `gorm:"column:code;uniqueIndex" json:"code"`
	Name string `gorm:"column:name" json:"name"`
}

func (Country) TableName() string {
	return "core_country"
}

type Interest struct {
	Record
	Name string `gorm:"column:name;uniqueIndex" json:"name"`
}

func (Interest) TableName() string {
	return "core_interest"
}

type AccountInterest struct {
	Record
	AccountID  uint `gorm:"column:account_id;uniqueIndex:idx_account_interest" json:"account_id"`
	InterestID uint `gorm:"column:interest_id;uniqueIndex:idx_account_interest" json:"interest_id"`
}

func (AccountInterest) TableName() string {
	return "core_account_interest"
}

type Role struct {
	Record
	Name string             `gorm:"column:name" json:"name"`
	Slug constants.RoleSlug `gorm:"column:slug;uniqueIndex" json:"slug"`
}

func (Role) TableName() string {
	return "core_role"
}

type AccountRole struct {
	Record
	UserID    uint `gorm:"column:user_id;uniqueIndex:idx_account_role" json:"user_id"`
	JournalID uint `gorm:"column:journal_id;uniqueIndex:idx_account_role" json:"journal_id"`
	RoleID    uint `gorm:"column:role_id;uniqueIndex:idx_account_role" json:"role_id"`
}

func (AccountRole) TableName() string {
	return "core_accountrole"
}

type ApiKey struct {
	ID        string    `gorm:"column:id;primaryKey" db:"id" json:"id"`
	Label     string    `gorm:"column:label" db:"label" json:"label"`
	Status    bool      `gorm:"column:status;default:true" db:"status" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" db:"created_at" json:"created_at"`
}

func (ApiKey) TableName() string {
	return "api_keys"
}
