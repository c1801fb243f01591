package models

import "time"

// Reader is a tracked individual whose reading activity is logged.
// Profiles are consulted by reports and seeded by `readers seed`; the core
// never mutates them during an import.
type Reader struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	FullName    string    `json:"full_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
