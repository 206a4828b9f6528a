package service

import (
	"testing"
	"time"
)

func TestCookieCodec_MintParseRoundtrip(t *testing.T) {
	cc := NewCookieCodec("test-secret", time.Hour)

	cookie, err := cc.Mint("sid-abc")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if cookie.Name != SessionCookieName {
		t.Errorf("unexpected cookie name: %s", cookie.Name)
	}
	if !cookie.HttpOnly {
		t.Errorf("session cookie must be http-only")
	}

	sid, err := cc.Parse(cookie.Value)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sid != "sid-abc" {
		t.Errorf("expected sid-abc, got %q", sid)
	}
}

func TestCookieCodec_Parse_Tampered(t *testing.T) {
	cc := NewCookieCodec("test-secret", time.Hour)

	cookie, err := cc.Mint("sid-abc")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := cc.Parse(cookie.Value + "x"); err == nil {
		t.Errorf("tampered cookie must not parse")
	}
	if _, err := cc.Parse("not-a-token"); err == nil {
		t.Errorf("garbage cookie must not parse")
	}
}

func TestCookieCodec_Parse_WrongSecret(t *testing.T) {
	minted, err := NewCookieCodec("secret-a", time.Hour).Mint("sid-abc")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := NewCookieCodec("secret-b", time.Hour).Parse(minted.Value); err == nil {
		t.Errorf("cookie signed with a different secret must not parse")
	}
}

func TestCookieCodec_Drop(t *testing.T) {
	drop := NewCookieCodec("test-secret", time.Hour).Drop()
	if drop.Name != SessionCookieName {
		t.Errorf("unexpected cookie name: %s", drop.Name)
	}
	if drop.MaxAge >= 0 {
		t.Errorf("drop cookie must expire immediately, got MaxAge=%d", drop.MaxAge)
	}
	if drop.Value != "" {
		t.Errorf("drop cookie must carry no value")
	}
}

func TestNewSessionID(t *testing.T) {
	a, err := NewSessionID()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := NewSessionID()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if a == b {
		t.Errorf("session ids must be unique")
	}
	if len(a) != 48 {
		t.Errorf("expected 48 hex chars, got %d", len(a))
	}
}
