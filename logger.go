package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

type RoomConnLogger struct {
	zerolog zerolog.Logger
}

func GetRoomConnLogger(ip string, roomCode string) RoomConnLogger {
	return RoomConnLogger{log.With().Str("ip", ip).Str("room-code", roomCode).Logger()}
}

func (l RoomConnLogger) JoinedRoom() {
	l.zerolog.Info().Msg("Joined room")
}

func (l RoomConnLogger) LeftRoom() {
	l.zerolog.Info().Msg("Left room")
}

func (l RoomConnLogger) RemovingRoom() {
	l.zerolog.Info().Msg("Removing room")
}

func LogCreatedRoom(roomCode string) {
	log.Info().Str("room-code", roomCode).Msg("Created")
}

func LogSweptRooms(count int) {
	log.Info().Int("count", count).Msg("Swept expired rooms")
}

func LogStartedServer(port string) {
	log.Info().Msgf("Starting server on port %v", port)
}

func LogErrorWhileUpgradingHTTP(err error) {
	log.Error().Err(err).Msg("Error while upgrading HTTP")
}

func LogRoomCreationFailed(err error) {
	log.Error().Err(err).Msg("Room creation failed")
}
