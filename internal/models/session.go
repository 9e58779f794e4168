package models

import (
	"strconv"
	"time"
)

// AccountType distinguishes customers from restaurant operators
type AccountType string

const (
	AccountCustomer   AccountType = "client"
	AccountRestaurant AccountType = "restaurant"
)

// ParseAccountType accepts the values the API uses for the account type
func ParseAccountType(s string) (AccountType, error) {
	switch s {
	case "client", "customer":
		return AccountCustomer, nil
	case "restaurant":
		return AccountRestaurant, nil
	}
	return "", ErrUnknownAccountType
}

// Label returns a display name for the account type
func (t AccountType) Label() string {
	if t == AccountRestaurant {
		return "Restaurant"
	}
	return "Customer"
}

// Session is the authenticated identity and bearer token of the current user
type Session struct {
	SubjectID   string      `json:"sub"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"type"`
	AvatarURL   string      `json:"url_image,omitempty"`
	Token       string      `json:"token"`
	ExpiresAt   *time.Time  `json:"expires_at,omitempty"`
}

// Authenticated reports whether the session carries a bearer token
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// Expired reports whether the token expiry has passed
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

// IsRestaurant reports whether the session belongs to a restaurant operator
func (s *Session) IsRestaurant() bool {
	return s.AccountType == AccountRestaurant
}

// ClientID returns the numeric subject id expected by the order endpoint
func (s *Session) ClientID() (int, error) {
	return strconv.Atoi(s.SubjectID)
}

// Profile is the part of a session that can be refreshed from the API
type Profile struct {
	SubjectID   string
	Email       string
	Name        string
	AccountType AccountType
	AvatarURL   string
}
