package simhash

import (
	"testing"
)

func TestFingerprint_Deterministic(t *testing.T) {
	text := "dry roasted peanuts sea salt"
	fp1 := Fingerprint(text)
	fp2 := Fingerprint(text)

	if fp1 != fp2 {
		t.Errorf("identical texts produced different fingerprints: %064b vs %064b", fp1, fp2)
	}
}

func TestFingerprint_SimilarTexts(t *testing.T) {
	fp1 := Fingerprint("dry roasted peanuts and sea salt in a jar")
	fp2 := Fingerprint("dry roasted peanuts and rock salt in a jar")

	dist := Distance(fp1, fp2)
	if dist > 10 {
		t.Errorf("similar texts have too large distance: %d", dist)
	}
}

func TestFingerprint_DifferentTexts(t *testing.T) {
	fp1 := Fingerprint("dry roasted peanuts and sea salt in a jar")
	fp2 := Fingerprint("completely unrelated content about quantum physics and mathematics")

	dist := Distance(fp1, fp2)
	if dist < 5 {
		t.Errorf("very different texts have too small distance: %d", dist)
	}
}

func TestFingerprint_EmptyInput(t *testing.T) {
	if fp := Fingerprint(""); fp != 0 {
		t.Errorf("empty input should produce fingerprint 0, got: %064b", fp)
	}
	if fp := Fingerprint("   \t\n  "); fp != 0 {
		t.Errorf("whitespace-only input should produce fingerprint 0, got: %064b", fp)
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b uint64
		want int
	}{
		{"identical", 0xFF, 0xFF, 0},
		{"all different", 0, ^uint64(0), 64},
		{"one bit", 0, 1, 1},
		{"two bits", 0, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestFingerprintDOM_SameStructureDifferentText(t *testing.T) {
	html1 := `<html><head><title>Peanut Butter</title></head><body><div><h1>Peanut Butter</h1><p>Creamy</p></div></body></html>`
	html2 := `<html><head><title>Almond Butter</title></head><body><div><h1>Almond Butter</h1><p>Crunchy</p></div></body></html>`

	fp1 := FingerprintDOM(html1)
	fp2 := FingerprintDOM(html2)

	if fp1 != fp2 {
		t.Errorf("identical DOM structures should produce same fingerprint, distance: %d", Distance(fp1, fp2))
	}
}

func TestFingerprintDOM_DifferentStructures(t *testing.T) {
	html1 := `<html><body><div><h1>Title</h1><p>Text</p><p>More text</p></div></body></html>`
	html2 := `<html><body><table><tr><td>A</td><td>B</td></tr><tr><td>C</td><td>D</td></tr></table></body></html>`

	dist := Distance(FingerprintDOM(html1), FingerprintDOM(html2))
	if dist < 3 {
		t.Errorf("different DOM structures should have larger distance, got: %d", dist)
	}
}

func TestFingerprintDOM_EmptyAndPlainText(t *testing.T) {
	if fp := FingerprintDOM(""); fp != 0 {
		t.Errorf("empty HTML should produce fingerprint 0, got: %064b", fp)
	}
	if fp := FingerprintDOM("just some plain text with no tags"); fp != 0 {
		t.Errorf("plain text with no tags should produce fingerprint 0, got: %064b", fp)
	}
}

func TestDrifted(t *testing.T) {
	fp := FingerprintDOM(`<html><body><div><h1>A</h1><p>B</p></div></body></html>`)

	if Drifted(0, fp) {
		t.Error("missing previous fingerprint must not count as drift")
	}
	if Drifted(fp, 0) {
		t.Error("missing current fingerprint must not count as drift")
	}
	if Drifted(fp, fp) {
		t.Error("identical fingerprints must not count as drift")
	}
	if !Drifted(fp, ^fp) {
		t.Error("inverted fingerprint should count as drift")
	}
}
