package domain

import "time"

// User sources distinguish the two user variants unified at the API
// boundary: self-registered accounts vs admin-entered contacts.
const (
	UserSourceApp   = "app"
	UserSourceAdmin = "admin"
)

// DirectoryUser is an admin-entered contact. It carries no credential.
type DirectoryUser struct {
	ID        int64     `json:"id" db:"id"`
	FullName  string    `json:"fullName" db:"full_name"`
	Email     string    `json:"email" db:"email"`
	Phone     *string   `json:"phone" db:"phone"`
	AvatarURL *string   `json:"avatarUrl" db:"avatar_url"`
	Notes     *string   `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// AccountUser is a self-registered customer. PasswordHash is owned by the
// auth and user services and never leaves the repository layer in API
// responses.
type AccountUser struct {
	ID           int64     `json:"id" db:"id"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	FullName     string    `json:"fullName" db:"full_name"`
	Gender       string    `json:"gender" db:"gender"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// UnifiedUser is the merged read model returned by the admin user listing.
type UnifiedUser struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"fullName"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}
