package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/gobwas/ws"
	"github.com/jonboulle/clockwork"
	qrcode "github.com/skip2/go-qrcode"
)

type HTTPHandler struct {
	Store  *Store
	Clock  clockwork.Clock
	Rejoin *RejoinJWT
	Config *Config
}

func NewHTTPServer(store *Store, clock clockwork.Clock, rejoin *RejoinJWT, cfg *Config) http.Handler {
	httpHandler := HTTPHandler{store, clock, rejoin, cfg}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowCredentials: false,
	}))
	r.Use(middleware.RealIP)
	r.Use(httprate.Limit(60, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint)))
	r.Use(middleware.Heartbeat("/"))

	r.Post("/rooms", httpHandler.createRoom())
	r.Get("/rooms/{roomCode}", httpHandler.getRoom())
	r.Get("/rooms/{roomCode}/qr", httpHandler.getRoomQR())
	r.Get("/ws", httpHandler.websocket())
	return r
}

func (h HTTPHandler) createRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		room, err := h.Store.Create()
		if err != nil {
			LogRoomCreationFailed(err)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		LogCreatedRoom(room.Code())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"roomCode": room.Code()})
	}
}

func (h HTTPHandler) getRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "roomCode")
		room, exists := h.Store.Get(code)
		if !exists {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(room.View())
	}
}

// getRoomQR renders the join URL as a QR code so a room can be shared by
// pointing a phone at the screen.
func (h HTTPHandler) getRoomQR() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "roomCode")
		if _, exists := h.Store.Get(code); !exists {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		joinURL := fmt.Sprintf("%s://%s/rooms/%s", scheme, r.Host, code)
		png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	}
}

func (h HTTPHandler) websocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			LogErrorWhileUpgradingHTTP(err)
			return
		}
		session := NewSession(h.Store, h.Clock, h.Rejoin, NewClientSocket(conn), r.RemoteAddr, h.Config.CountdownTicks)
		go func() {
			defer conn.Close()
			// the request context dies with this handler; the session and
			// any countdown it starts must outlive it
			session.Run(context.Background())
		}()
	}
}
