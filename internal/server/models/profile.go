package models

import "time"

// Profile is the public-facing user record plus its usage counter.
type Profile struct {
	ID      int64     `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Entries int64     `json:"entries"`
	Joined  time.Time `json:"joined"`
}
