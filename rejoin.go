package main

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const rejoinTime = time.Minute * 2

// RejoinJWT issues short-lived signed keys binding a (room, member) pair,
// so a dropped client can reclaim its seat without going through name
// eviction.
type RejoinJWT struct {
	jwtSecret string
}

func NewRejoinJWT(jwtSecret string) *RejoinJWT {
	return &RejoinJWT{jwtSecret}
}

func (r RejoinJWT) GenerateRejoinKey(roomCode, memberID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"roomCode": roomCode,
		"memberId": memberID,
		"exp":      jwt.NewNumericDate(time.Now().Add(rejoinTime)),
	})
	return token.SignedString([]byte(r.jwtSecret))
}

func (r RejoinJWT) ParseRejoinKey(tokenString string) (roomCode, memberID string, ok bool) {
	token, _ := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(r.jwtSecret), nil
	})
	if token == nil || !token.Valid {
		return "", "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", false
	}
	roomCode, _ = claims["roomCode"].(string)
	memberID, _ = claims["memberId"].(string)
	return roomCode, memberID, roomCode != "" && memberID != ""
}
