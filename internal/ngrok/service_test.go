package ngrok

import (
	"context"
	"io"
	"testing"

	"musa/internal/config"

	"github.com/sirupsen/logrus"
)

func TestNewServiceDisabled(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc, err := NewService(&config.NgrokConfig{Enabled: false}, logger)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if svc != nil {
		t.Fatal("Expected nil service when disabled")
	}

	// A disabled service is a no-op.
	if err := svc.StartTunnel(context.Background(), "http://localhost:8080"); err != nil {
		t.Errorf("StartTunnel on nil service: %v", err)
	}
	if url := svc.GetPublicURL(); url != "" {
		t.Errorf("Expected empty public URL, got %s", url)
	}
	if err := svc.Stop(); err != nil {
		t.Errorf("Stop on nil service: %v", err)
	}
}

func TestNewServiceRequiresToken(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	if _, err := NewService(&config.NgrokConfig{Enabled: true}, logger); err == nil {
		t.Error("Expected error for missing auth token")
	}
}
