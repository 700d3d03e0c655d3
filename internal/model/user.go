package model

import "time"

// Profile holds the guided onboarding answers collected after registration
type Profile struct {
	OrgName      string `json:"orgName" bson:"orgName"`
	Sector       string `json:"sector" bson:"sector"`
	Country      string `json:"country" bson:"country"`
	Stage        string `json:"stage" bson:"stage"`               // e.g. "seed", "growth", "mature"
	TeamSize     int    `json:"teamSize" bson:"teamSize"`
	YearsActive  int    `json:"yearsActive" bson:"yearsActive"`
	Completed    bool   `json:"completed" bson:"completed"`
}

// User is a registered account
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	Profile      Profile   `json:"profile" bson:"profile"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}
