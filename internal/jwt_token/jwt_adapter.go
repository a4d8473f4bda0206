package jwttoken

import (
	authmw "assetdesk/pkg/platform/middleware/auth"
)

// JWTServiceAdapter exposes JWTService to the session middleware.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateSession(tokenString string) (*authmw.SessionClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &authmw.SessionClaims{SessionID: claims.SessionID}, nil
}
