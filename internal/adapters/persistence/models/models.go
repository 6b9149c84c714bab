package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents the users table. Users are never hard-deleted; the
// soft-delete column keeps the audit trail intact.
type User struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Email             string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password          string         `gorm:"size:255;not null" json:"-"`
	Role              string         `gorm:"size:20;not null;default:'officer'" json:"role"`
	Confirmed         bool           `gorm:"default:false" json:"confirmed"`
	ConfirmedOn       *time.Time     `json:"confirmed_on"`
	HasUsablePassword bool           `gorm:"default:true" json:"-"`
	RegisteredOn      time.Time      `gorm:"autoCreateTime" json:"registered_on"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID           uint       `json:"id"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	Confirmed    bool       `json:"confirmed"`
	ConfirmedOn  *time.Time `json:"confirmed_on,omitempty"`
	RegisteredOn time.Time  `json:"registered_on"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Role:         u.Role,
		Confirmed:    u.Confirmed,
		ConfirmedOn:  u.ConfirmedOn,
		RegisteredOn: u.RegisteredOn,
	}
}

// PreVerifiedEmail is the allow-list entry gating registration
type PreVerifiedEmail struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Email string `gorm:"uniqueIndex;size:100;not null" json:"email"`
}

func (PreVerifiedEmail) TableName() string {
	return "pre_verified_emails"
}

// ============================================================
// Token Tables
// ============================================================

// Token type namespaces for TokenRecord
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenRecord represents the token_records table: one row per issued
// access or refresh token, keyed by JTI. Rows are never deleted by the
// request path; revocation flips the expired flag.
type TokenRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	TokenType string    `gorm:"size:10;not null;uniqueIndex:idx_token_type_jti" json:"token_type"`
	JTI       string    `gorm:"size:64;not null;uniqueIndex:idx_token_type_jti;index" json:"jti"`
	Expired   bool      `gorm:"default:false" json:"expired"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}

func (TokenRecord) TableName() string {
	return "token_records"
}

// Email token purposes
const (
	PurposeConfirmEmail  = "confirm-email"
	PurposeResetPassword = "reset-password"
)

// EmailToken represents the email_tokens table: one row per issued
// confirm-email or reset-password link token, consumed on first use.
type EmailToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"size:512;not null;index" json:"-"`
	Purpose   string    `gorm:"size:20;not null" json:"purpose"`
	Used      bool      `gorm:"default:false" json:"used"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (EmailToken) TableName() string {
	return "email_tokens"
}

// ============================================================
// Club Tables
// ============================================================

// Tag represents the tags master table
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

func (Tag) TableName() string {
	return "tags"
}

// Club represents the clubs table. Recruitment works in one of two
// mutually exclusive modes selected by AppRequired: application-based
// clubs use the apply deadline fields, open clubs use the recruiting
// period fields. NewMembers is recomputed by the scheduler.
type Club struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Slug               string         `gorm:"uniqueIndex;size:120;not null" json:"slug"`
	Name               string         `gorm:"size:100;not null" json:"name"`
	OwnerID            uint           `gorm:"uniqueIndex;not null" json:"owner_id"`
	AboutUs            string         `gorm:"type:text" json:"about_us"`
	GetInvolved        string         `gorm:"type:text" json:"get_involved"`
	AppRequired        bool           `gorm:"not null" json:"app_required"`
	NewMembers         bool           `gorm:"default:false" json:"new_members"`
	RecruitingStart    *time.Time     `json:"recruiting_start"`
	RecruitingEnd      *time.Time     `json:"recruiting_end"`
	ApplyDeadlineStart *time.Time     `json:"apply_deadline_start"`
	ApplyDeadlineEnd   *time.Time     `json:"apply_deadline_end"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	Owner User  `gorm:"foreignKey:OwnerID" json:"-"`
	Tags  []Tag `gorm:"many2many:club_tags" json:"tags"`
}

func (Club) TableName() string {
	return "clubs"
}

// ClubResponse DTO
type ClubResponse struct {
	ID          uint   `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	AboutUs     string `json:"about_us"`
	GetInvolved string `json:"get_involved"`
	AppRequired bool   `json:"app_required"`
	NewMembers  bool   `json:"new_members"`
	Tags        []Tag  `json:"tags"`
}

func (c *Club) ToResponse() *ClubResponse {
	tags := c.Tags
	if tags == nil {
		tags = []Tag{}
	}
	return &ClubResponse{
		ID:          c.ID,
		Slug:        c.Slug,
		Name:        c.Name,
		AboutUs:     c.AboutUs,
		GetInvolved: c.GetInvolved,
		AppRequired: c.AppRequired,
		NewMembers:  c.NewMembers,
		Tags:        tags,
	}
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&PreVerifiedEmail{},
		&TokenRecord{},
		&EmailToken{},
		&Tag{},
		&Club{},
	)
}
