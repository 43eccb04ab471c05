package main

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	JwtSecret      string
	RoomMaxAge     time.Duration
	SweepInterval  time.Duration
	CountdownTicks int
}

func MustLoadConfig() *Config {
	godotenv.Load()
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		panic("JWT_SECRET is not provided!")
	}
	roomMaxAge := time.Hour
	if raw := os.Getenv("ROOM_MAX_AGE"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			panic("ROOM_MAX_AGE is not a valid duration!")
		}
		roomMaxAge = parsed
	}
	sweepInterval := time.Hour
	if raw := os.Getenv("SWEEP_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			panic("SWEEP_INTERVAL is not a valid duration!")
		}
		sweepInterval = parsed
	}
	countdownTicks := 3
	if raw := os.Getenv("COUNTDOWN_SECONDS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			panic("COUNTDOWN_SECONDS is not a positive integer!")
		}
		countdownTicks = parsed
	}
	return &Config{port, jwtSecret, roomMaxAge, sweepInterval, countdownTicks}
}
