package domain

import (
	"time"
)

// Todo is a free-form task next to the daily checklist.
type Todo struct {
	ID        string    `bson:"id" json:"id"`
	Text      string    `bson:"text" json:"text"`
	Completed bool      `bson:"completed" json:"completed"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Reminder is a time-of-day note, e.g. "07:00 Morning routine".
type Reminder struct {
	ID        string    `bson:"id" json:"id"`
	Time      string    `bson:"time" json:"time"` // HH:MM, 24h clock
	Text      string    `bson:"text" json:"text"`
	Completed bool      `bson:"completed" json:"completed"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
