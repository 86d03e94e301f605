package models

import "time"

type UserType string

const (
	UserTypeTourist UserType = "tourist"
	UserTypeGuide   UserType = "guide"
)

func (t UserType) Valid() bool {
	return t == UserTypeTourist || t == UserTypeGuide
}

type User struct {
	ID                 string     `json:"id" bson:"_id,omitempty"`
	Username           string     `json:"username" bson:"username"`
	Email              string     `json:"email" bson:"email"`
	FullName           string     `json:"fullName,omitempty" bson:"fullName,omitempty"`
	UserType           UserType   `json:"userType" bson:"userType"`
	CurrentLatitude    Degrees    `json:"currentLatitude" bson:"currentLatitude,omitempty"`
	CurrentLongitude   Degrees    `json:"currentLongitude" bson:"currentLongitude,omitempty"`
	LastLocationUpdate *time.Time `json:"lastLocationUpdate,omitempty" bson:"lastLocationUpdate,omitempty"`
	CreatedAt          time.Time  `json:"createdAt" bson:"createdAt"`
	PasswordHash       string     `json:"-" bson:"passwordHash,omitempty"`
	// Plain-text password kept by records written before hashing was introduced.
	LegacyPassword string `json:"-" bson:"password,omitempty"`
}

// Location reports the user's current coordinates, if both are usable.
func (u User) Location() (lat, lon float64, ok bool) {
	if !u.CurrentLatitude.Valid || !u.CurrentLongitude.Valid {
		return 0, 0, false
	}
	return u.CurrentLatitude.Value, u.CurrentLongitude.Value, true
}
