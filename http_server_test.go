package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func newTestHTTPServer(t *testing.T) (*httptest.Server, *Store) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	store := NewStore(clock)
	config := &Config{
		Port:           "3000",
		JwtSecret:      "test-secret",
		RoomMaxAge:     time.Hour,
		SweepInterval:  time.Hour,
		CountdownTicks: 3,
	}
	server := httptest.NewServer(NewHTTPServer(store, clock, NewRejoinJWT(config.JwtSecret), config))
	t.Cleanup(server.Close)
	return server, store
}

func TestCreateAndGetRoom(t *testing.T) {
	server, store := newTestHTTPServer(t)

	res, err := http.Post(server.URL+"/rooms", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 got %d", res.StatusCode)
	}
	var created struct {
		RoomCode string `json:"roomCode"`
	}
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if _, exists := store.Get(created.RoomCode); !exists {
		t.Fatal("created room missing from store")
	}

	res, err = http.Get(server.URL + "/rooms/" + created.RoomCode)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	var view RoomView
	if err := json.NewDecoder(res.Body).Decode(&view); err != nil {
		t.Fatal(err)
	}
	if view.ID != created.RoomCode {
		t.Errorf("expected view id %q got %q", created.RoomCode, view.ID)
	}
	if view.Revealed {
		t.Error("fresh room should not be revealed")
	}
}

func TestGetRoomNotFound(t *testing.T) {
	server, _ := newTestHTTPServer(t)
	res, err := http.Get(server.URL + "/rooms/nope42")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 got %d", res.StatusCode)
	}
}

func TestRoomQRCode(t *testing.T) {
	server, store := newTestHTTPServer(t)
	room, err := store.Create()
	if err != nil {
		t.Fatal(err)
	}

	res, err := http.Get(server.URL + "/rooms/" + room.Code() + "/qr")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("expected image/png got %q", ct)
	}
	header := make([]byte, 4)
	if _, err := io.ReadFull(res.Body, header); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(header[1:4], []byte("PNG")) {
		t.Errorf("response is not a png: % x", header)
	}

	res, err = http.Get(server.URL + "/rooms/nope42/qr")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown room got %d", res.StatusCode)
	}
}
