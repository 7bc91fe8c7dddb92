package models

// UserProfile is a user record from the user data table. Coordinates are
// stored as decimal strings and the plant list holds keys into the plant
// definitions table. The record is read-only to this service.
type UserProfile struct {
	UserID    string   `json:"user_id" dynamodbav:"user_id"`
	Latitude  string   `json:"latitude" dynamodbav:"latitude"`
	Longitude string   `json:"longitude" dynamodbav:"longitude"`
	Plants    []string `json:"plants" dynamodbav:"plants"`
}

// HasLocation reports whether the profile carries usable coordinates
func (u *UserProfile) HasLocation() bool {
	return u.Latitude != "" && u.Longitude != ""
}
