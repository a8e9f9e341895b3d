package controllers

import "testing"

func TestHealthStatus(t *testing.T) {
	hc := NewHealthController()
	status := hc.Status()
	if status["status"] != "ok" {
		t.Errorf("expected status ok, got %q", status["status"])
	}
}
