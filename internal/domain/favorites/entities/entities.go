// Package entities contains favorites domain entities
package entities

import "time"

// MaxFavorites is the per-user favorites limit
const MaxFavorites = 10

// User represents a Telegram user of the bot
type User struct {
	ID                   uint      `gorm:"primaryKey"`
	TelegramID           int64     `gorm:"column:telegram_id;not null;uniqueIndex"`
	Username             *string   `gorm:"column:username"`
	ReceiveNotifications bool      `gorm:"column:receive_notifications;not null;default:true"`
	CreatedAt            time.Time `gorm:"autoCreateTime"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// Favorite represents a movie saved by a user
type Favorite struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        uint      `gorm:"not null;uniqueIndex:uq_user_movie"`
	MovieID       int64     `gorm:"column:movie_id;not null;uniqueIndex:uq_user_movie"`
	MovieTitle    string    `gorm:"column:movie_title;not null"`
	MovieOverview string    `gorm:"column:movie_overview"`
	PosterURL     string    `gorm:"column:poster_url"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (Favorite) TableName() string {
	return "favorites"
}
