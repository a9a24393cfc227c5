package entities

import "time"

// DefaultCoverImage is the sentinel cover shown for books without an uploaded image.
const DefaultCoverImage = "default_cover.jpg"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"` // bcrypt digest, never serialized
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Book is a catalogue entry. The (title, author, publisher) triple is unique.
type Book struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Title      string `gorm:"size:512;not null;uniqueIndex:idx_books_identity" json:"title"`
	Author     string `gorm:"size:256;not null;uniqueIndex:idx_books_identity;index" json:"author"`
	Pages      int    `gorm:"not null" json:"pages"`
	Publisher  string `gorm:"size:256;not null;uniqueIndex:idx_books_identity;index" json:"publisher"`
	CoverImage string `gorm:"size:255;default:'default_cover.jpg'" json:"cover_image"`
}
