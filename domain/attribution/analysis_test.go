package attribution

import "testing"

func TestTierScore(t *testing.T) {
	tests := []struct {
		tier Tier
		want int
	}{
		{TierConfirmed, 95},
		{TierLikely, 70},
		{TierUncertain, 40},
		{TierUnknown, 0},
		{Tier("garbage"), 0},
	}
	for _, tt := range tests {
		if got := tt.tier.Score(); got != tt.want {
			t.Errorf("%s.Score() = %d, want %d", tt.tier, got, tt.want)
		}
	}
}

func TestParseTier(t *testing.T) {
	if got := ParseTier("confirmed"); got != TierConfirmed {
		t.Errorf("ParseTier(confirmed) = %v", got)
	}
	if got := ParseTier("definitely"); got != TierUnknown {
		t.Errorf("ParseTier(definitely) = %v, want unknown", got)
	}
}

func TestFieldBasis(t *testing.T) {
	reported := AnalysisResult{Basis: BasisVisibleSignature}
	if got := reported.FieldBasis(FieldArtist); got != BasisVisibleSignature {
		t.Errorf("reported basis = %v, want visible_signature", got)
	}

	research := AnalysisResult{Origin: OriginResearch}
	if got := research.FieldBasis(FieldPrinter); got != BasisExternalResearch {
		t.Errorf("research basis = %v, want external_research", got)
	}

	analysis := AnalysisResult{Origin: OriginAnalysis}
	if got := analysis.FieldBasis(FieldArtist); got != BasisStylisticAnalysis {
		t.Errorf("artist default basis = %v, want stylistic_analysis", got)
	}
	if got := analysis.FieldBasis(FieldPublisher); got != BasisUnknown {
		t.Errorf("publisher default basis = %v, want unknown", got)
	}
}

func TestFieldTier(t *testing.T) {
	result := AnalysisResult{
		Artist:     "Chéri Hérouard",
		Printer:    "Imprimerie Chaix",
		ArtistTier: TierConfirmed,
	}

	if got := result.FieldTier(FieldArtist); got != TierConfirmed {
		t.Errorf("artist tier = %v, want confirmed", got)
	}
	if got := result.FieldTier(FieldPrinter); got != TierLikely {
		t.Errorf("named printer tier = %v, want likely", got)
	}
	if got := result.FieldTier(FieldPublisher); got != TierUnknown {
		t.Errorf("empty publisher tier = %v, want unknown", got)
	}
}

func TestNewLink_ClampsScore(t *testing.T) {
	if got := NewLink(1, 150, BasisUnknown, "").Score(); got != 100 {
		t.Errorf("score = %d, want 100", got)
	}
	if got := NewLink(1, -5, BasisUnknown, "").Score(); got != 0 {
		t.Errorf("score = %d, want 0", got)
	}
}

func TestLinkWithoutEntity(t *testing.T) {
	link := NewLink(42, 95, BasisVisibleSignature, "PAI catalog")
	cleared := link.WithoutEntity()

	if cleared.EntityID() != 0 {
		t.Errorf("entity id = %d, want 0", cleared.EntityID())
	}
	if cleared.Score() != 95 || cleared.Basis() != BasisVisibleSignature {
		t.Error("clearing the entity must keep score and basis")
	}
}

func TestOutcomesFailed(t *testing.T) {
	outcomes := Outcomes{
		{Field: FieldArtist},
		{Field: FieldPrinter, Err: errTest},
	}
	failed := outcomes.Failed()
	if len(failed) != 1 || failed[0].Field != FieldPrinter {
		t.Errorf("Failed() = %v", failed)
	}
}

var errTest = &testError{}

type testError struct{}

func (*testError) Error() string { return "boom" }
