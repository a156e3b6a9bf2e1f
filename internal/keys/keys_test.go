package keys

import "testing"

func TestNameKey(t *testing.T) {
	if got := NameKey("  Doge   Warrior "); got != "doge_warrior" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestPlaceholderImageURL(t *testing.T) {
	if got := PlaceholderImageURL("Doge Warrior"); got != "https://placehold.co/400x400?text=Doge+Warrior" {
		t.Fatalf("unexpected url %q", got)
	}
	if got := PlaceholderImageURL(" "); got != "https://placehold.co/400x400?text=NFT" {
		t.Fatalf("unexpected fallback url %q", got)
	}
}
