package keys

import (
	"net/url"
	"strings"
)

const placeholderImageBase = "https://placehold.co/400x400"

// NameKey produces a canonical key for an NFT name: trimmed, lower-cased,
// inner whitespace collapsed to underscores. Used to reject duplicate names
// within one wallet regardless of spacing or case.
func NameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "_"))
}

// PlaceholderImageURL returns the placeholder image used for NFTs minted
// without an explicit image, e.g. ".../400x400?text=Doge+Warrior".
func PlaceholderImageURL(name string) string {
	text := strings.Join(strings.Fields(name), " ")
	if text == "" {
		text = "NFT"
	}
	return placeholderImageBase + "?" + url.Values{"text": {text}}.Encode()
}
