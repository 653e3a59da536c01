package integration

import (
	"strconv"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tripdesk/tripdesk/pkg/session"
)

func (s *StepsContext) registerSessionSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I hold a session token for user (\d+) with role "([^"]*)"$`, s.iHoldASessionToken)
	sc.Step(`^I hold a session token for user (\d+) with role "([^"]*)" signed with another key$`, s.iHoldAForeignSessionToken)
	sc.Step(`^I hold an expired session token for user (\d+) with role "([^"]*)"$`, s.iHoldAnExpiredSessionToken)
}

func (s *StepsContext) iHoldASessionToken(userID int, role string) error {
	return s.signToken(userID, role, sessionKey, time.Now().Add(time.Hour))
}

func (s *StepsContext) iHoldAForeignSessionToken(userID int, role string) error {
	return s.signToken(userID, role, []byte("someone-elses-key-0123456789abcdef"), time.Now().Add(time.Hour))
}

func (s *StepsContext) iHoldAnExpiredSessionToken(userID int, role string) error {
	return s.signToken(userID, role, sessionKey, time.Now().Add(-time.Minute))
}

// signToken builds a session token the way the server does, with the given key and expiry
func (s *StepsContext) signToken(userID int, role string, key []byte, expires time.Time) error {
	claims := session.Claims{
		Email: "token@example.com",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			Issuer:    session.Issuer,
			IssuedAt:  jwt.NewNumericDate(expires.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return err
	}
	s.authToken = token
	return nil
}
