package models

import "time"

// NearbyGuide is a guide record annotated with its distance in kilometres
// from the query point.
type NearbyGuide struct {
	User
	Distance float64 `json:"distance"`
}

// LocationEntry is one row of the guide or tourist location feed.
type LocationEntry struct {
	UserID      string     `json:"userId"`
	Username    string     `json:"username"`
	Name        string     `json:"name"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
	UserType    UserType   `json:"userType"`
}

// LocationEvent is published whenever a user reports a new position.
type LocationEvent struct {
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	UserType  UserType  `json:"userType"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	At        time.Time `json:"at"`
}
