// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"math"
	"testing"

	"github.com/pdiddy/deal-engine/pkg/types"
)

func fptr(v float64) *float64 { return &v }

func TestDeduplicateCollapsesSuffixVariants(t *testing.T) {
	deals := []types.ExtractedDeal{
		{DealName: "Acme Corporation", CustomerName: "Acme Corporation", DealValue: fptr(150000), Status: "qualified", Confidence: 0.9},
		{DealName: "Acme Corp", CustomerName: "Acme Corp", DealValue: fptr(150000), Status: "qualified", Confidence: 0.8},
	}

	kept, duplicates := deduplicate(deals, types.DefaultDeduplicationThreshold)
	if len(kept) != 1 {
		t.Fatalf("len(kept) = %d, want 1", len(kept))
	}
	if kept[0].DealName != "Acme Corporation" {
		t.Errorf("kept = %q, want the higher-confidence record", kept[0].DealName)
	}
	if len(duplicates) != 1 || duplicates[0].DealName != "Acme Corp" {
		t.Errorf("duplicates = %+v", duplicates)
	}
}

func TestDeduplicateHigherConfidenceReplacesInPlace(t *testing.T) {
	deals := []types.ExtractedDeal{
		{DealName: "Acme Renewal", Confidence: 0.6},
		{DealName: "Acme Renewal", Confidence: 0.9},
	}

	kept, duplicates := deduplicate(deals, 0.85)
	if len(kept) != 1 || kept[0].Confidence != 0.9 {
		t.Errorf("kept = %+v, want the later higher-confidence record", kept)
	}
	if len(duplicates) != 1 || duplicates[0].Confidence != 0.6 {
		t.Errorf("duplicates = %+v", duplicates)
	}
}

func TestDeduplicateTiePrefersEarlier(t *testing.T) {
	deals := []types.ExtractedDeal{
		{DealName: "Acme Renewal", CustomerName: "First Seen", Confidence: 0.7},
		{DealName: "Acme Renewal", Confidence: 0.7},
	}

	kept, duplicates := deduplicate(deals, 0.85)
	if len(kept) != 1 || kept[0].CustomerName != "First Seen" {
		t.Errorf("kept = %+v, want the earlier record on equal confidence", kept)
	}
	if len(duplicates) != 1 {
		t.Errorf("len(duplicates) = %d, want 1", len(duplicates))
	}
}

func TestDeduplicateKeepsDistinctDeals(t *testing.T) {
	deals := []types.ExtractedDeal{
		{DealName: "Acme Platform Migration", Confidence: 0.9},
		{DealName: "Globex Cloud Renewal", Confidence: 0.9},
	}

	kept, duplicates := deduplicate(deals, 0.85)
	if len(kept) != 2 {
		t.Errorf("len(kept) = %d, want 2", len(kept))
	}
	if len(duplicates) != 0 {
		t.Errorf("duplicates = %+v, want none", duplicates)
	}
}

func TestDeduplicatePairwiseAgainstKeptOnly(t *testing.T) {
	// B is close enough to A to be consumed; C is close to B but not to A.
	// Since B never enters the kept set, C survives.
	deals := []types.ExtractedDeal{
		{DealName: "Northwind Cutover", DealValue: fptr(100), Confidence: 0.9},
		{DealName: "Northwind Cutover", DealValue: fptr(117), Confidence: 0.8},
		{DealName: "Northwind Cutover", DealValue: fptr(200), Confidence: 0.8},
	}

	kept, duplicates := deduplicate(deals, 0.85)
	if len(kept) != 2 {
		t.Fatalf("len(kept) = %d, want 2", len(kept))
	}
	if *kept[0].DealValue != 100 || *kept[1].DealValue != 200 {
		t.Errorf("kept values = %v, %v, want 100 and 200", *kept[0].DealValue, *kept[1].DealValue)
	}
	if len(duplicates) != 1 || *duplicates[0].DealValue != 117 {
		t.Errorf("duplicates = %+v, want the middle record", duplicates)
	}
}

func TestSimilarityRenormalizesOverPresentFields(t *testing.T) {
	a := types.ExtractedDeal{DealName: "Acme Renewal", DealValue: fptr(100000)}
	b := types.ExtractedDeal{DealName: "Acme Renewal"}

	// Only the name component contributes, so an exact name match alone
	// scores 1.0.
	if got := similarity(a, b); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("similarity = %v, want 1.0", got)
	}

	b.DealValue = fptr(50000)
	got := similarity(a, b)
	want := (0.4 + 0.2*0.5) / 0.6
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("similarity = %v, want %v", got, want)
	}
}

func TestTokenOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"suffix variants match", "Acme Corporation", "Acme Corp", 1.0},
		{"shared token", "Acme Platform", "Acme Cloud", 1.0 / 3.0},
		{"disjoint", "Alpha", "Beta", 0},
		{"punctuation and suffix trimmed", "Initech, Inc.", "Initech", 1.0},
		{"empty side", "", "Acme", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tokenOverlap(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("tokenOverlap(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestValueCloseness(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"equal", 100, 100, 1},
		{"half", 100, 50, 0.5},
		{"both zero", 0, 0, 1},
		{"one zero", 100, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := valueCloseness(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("valueCloseness(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
