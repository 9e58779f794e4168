package session

import (
	"errors"
	"fmt"

	"food-ordering-web/internal/api"
	"food-ordering-web/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims are the profile claims carried by the API bearer token
type tokenClaims struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	URLImage string `json:"urlImage"`
	jwt.RegisteredClaims
}

// parseClaims reads the token payload. The signature is checked by the API
// on every request, so it is not verified here.
func parseClaims(token string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return claims, nil
}

// sessionFromLogin builds the session from the login response. Profile
// fields from the response win over token claims.
func sessionFromLogin(resp *api.LoginResponse) (*models.Session, error) {
	sess := &models.Session{Token: resp.Token}

	claims, claimErr := parseClaims(resp.Token)
	if claimErr == nil {
		sess.SubjectID = claims.Subject
		sess.Email = claims.Email
		sess.Name = claims.Name
		sess.AvatarURL = claims.URLImage
		if claims.ExpiresAt != nil {
			exp := claims.ExpiresAt.Time
			sess.ExpiresAt = &exp
		}
		if claims.Type != "" {
			t, err := models.ParseAccountType(claims.Type)
			if err != nil {
				return nil, err
			}
			sess.AccountType = t
		}
	}

	if resp.Client != nil {
		profile, err := resp.Client.Profile()
		if err != nil {
			return nil, err
		}
		applyProfile(sess, profile)
	} else if claimErr != nil {
		return nil, claimErr
	}

	if sess.SubjectID == "" {
		return nil, errors.New("session has no subject")
	}
	if sess.AccountType == "" {
		sess.AccountType = models.AccountCustomer
	}
	return sess, nil
}

func applyProfile(sess *models.Session, p models.Profile) {
	if p.SubjectID != "" {
		sess.SubjectID = p.SubjectID
	}
	if p.Email != "" {
		sess.Email = p.Email
	}
	if p.Name != "" {
		sess.Name = p.Name
	}
	if p.AccountType != "" {
		sess.AccountType = p.AccountType
	}
	if p.AvatarURL != "" {
		sess.AvatarURL = p.AvatarURL
	}
}
