package models

import "time"

const Access = "access_token"

// Token is an issued access token.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Claims are the validated claims of an access token.
type Claims struct {
	ID      string
	Subject string
	Role    string
}
