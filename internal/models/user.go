package models

// User represents the single stored credential record.
//
// The store holds exactly zero or one of these; each signup overwrites the
// previous record. The password is stored as provided - this application
// deliberately implements no real authentication (see README).
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
