package main

import (
	"context"
	"net/http"

	"github.com/jonboulle/clockwork"
)

func main() {
	config := MustLoadConfig()
	clock := clockwork.NewRealClock()
	store := NewStore(clock)
	rejoin := NewRejoinJWT(config.JwtSecret)

	go store.RunSweeper(context.Background(), config.SweepInterval, config.RoomMaxAge)

	handler := NewHTTPServer(store, clock, rejoin, config)
	LogStartedServer(config.Port)
	http.ListenAndServe(":"+config.Port, handler)
}
