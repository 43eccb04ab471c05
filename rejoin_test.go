package main

import "testing"

func TestRejoinKeyRoundTrip(t *testing.T) {
	rejoin := NewRejoinJWT("test-secret")
	key, err := rejoin.GenerateRejoinKey("abc123", "member-1")
	if err != nil {
		t.Fatal(err)
	}
	roomCode, memberID, ok := rejoin.ParseRejoinKey(key)
	if !ok {
		t.Fatal("freshly generated key rejected")
	}
	if roomCode != "abc123" {
		t.Errorf("wrong room code expected: %v got: %v", "abc123", roomCode)
	}
	if memberID != "member-1" {
		t.Errorf("wrong member id expected: %v got: %v", "member-1", memberID)
	}
}

func TestRejoinKeyRejectsGarbage(t *testing.T) {
	rejoin := NewRejoinJWT("test-secret")
	if _, _, ok := rejoin.ParseRejoinKey("not-a-token"); ok {
		t.Error("garbage token accepted")
	}
}

func TestRejoinKeyRejectsWrongSecret(t *testing.T) {
	key, err := NewRejoinJWT("secret-a").GenerateRejoinKey("abc123", "member-1")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, ok := NewRejoinJWT("secret-b").ParseRejoinKey(key); ok {
		t.Error("token signed with another secret accepted")
	}
}
