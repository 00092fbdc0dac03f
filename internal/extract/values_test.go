// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"
	"time"
)

func TestParseMonetary(t *testing.T) {
	tests := []struct {
		name         string
		match        []string
		wantValue    float64
		wantCurrency string
		wantOK       bool
	}{
		{"plain with commas", []string{"$1,500,000", "1,500,000", ""}, 1500000, "USD", true},
		{"k suffix", []string{"$75k", "75", "k"}, 75000, "USD", true},
		{"uppercase K", []string{"50K", "50", "K"}, 50000, "USD", true},
		{"m suffix with pounds", []string{"£2.5m", "2.5", "m"}, 2500000, "GBP", true},
		{"euro symbol", []string{"€900", "900", ""}, 900, "EUR", true},
		{"explicit code wins", []string{"Value: 1200 CAD", "1200", ""}, 1200, "CAD", true},
		{"word multiplier", []string{"2 million", "2", "million"}, 2000000, "USD", true},
		{"not a number", []string{"garbage", "garbage", ""}, 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, currency, ok := parseMonetary(tt.match)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if value != tt.wantValue {
				t.Errorf("value = %v, want %v", value, tt.wantValue)
			}
			if currency != tt.wantCurrency {
				t.Errorf("currency = %q, want %q", currency, tt.wantCurrency)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input  string
		want   time.Time
		wantOK bool
	}{
		{"2025-03-15", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"03/15/2025", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"3/1/2025", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"15-03-2025", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"March 15, 2025", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"March 15 2025", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"2025-03-15T10:30:00", time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC), true},
		{"Q1 2025", time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), true},
		{"Q1 2024", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), true},
		{"q4 2025", time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC), true},
		{"June 30, 2025.", time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), true},
		{"someday soon", time.Time{}, false},
		{"1/2/03", time.Time{}, false},
		{"1200-01-01", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseDate(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("parseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"new", "registered"},
		{"Open", "registered"},
		{"Won", "closed-won"},
		{"Closed Won", "closed-won"},
		{"lost", "closed-lost"},
		{"closed lost", "closed-lost"},
		{"negotiating", "negotiation"},
		{"In Negotiation", "negotiation"},
		{"Qualified", "qualified"},
		{"discovery", "discovery"},
		{"Weird Stage", "weird stage"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := normalizeStatus(tt.input); got != tt.want {
				t.Errorf("normalizeStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseProbability(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"60", 60, true},
		{"0", 0, true},
		{"100", 100, true},
		{"150", 100, true},
		{"-5", 0, true},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseProbability(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("parseProbability(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanCapture(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Acme Corp.  ", "Acme Corp"},
		{"Jane Smith,", "Jane Smith"},
		{"qualified;", "qualified"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := cleanCapture(tt.input); got != tt.want {
				t.Errorf("cleanCapture(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
