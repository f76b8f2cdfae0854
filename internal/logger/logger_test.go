package logger

import (
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewCarriesPrefix(t *testing.T) {
	l := New("corpus")
	if l.GetPrefix() != "corpus" {
		t.Errorf("expected prefix corpus, got %q", l.GetPrefix())
	}
}

func TestNewFollowsGlobalLevel(t *testing.T) {
	prev := log.GetLevel()
	defer log.SetLevel(prev)

	log.SetLevel(log.DebugLevel)
	if l := New("tags"); l.GetLevel() != log.DebugLevel {
		t.Errorf("sub-logger should pick up the global level, got %v", l.GetLevel())
	}
	log.SetLevel(log.WarnLevel)
	if l := New("tags"); l.GetLevel() != log.WarnLevel {
		t.Errorf("sub-logger should pick up the global level, got %v", l.GetLevel())
	}
}

func TestNewWithConfig(t *testing.T) {
	l := NewWithConfig("export", log.ErrorLevel, false, true, log.JSONFormatter)
	if l.GetPrefix() != "export" {
		t.Errorf("expected prefix export, got %q", l.GetPrefix())
	}
	if l.GetLevel() != log.ErrorLevel {
		t.Errorf("expected error level, got %v", l.GetLevel())
	}
}
