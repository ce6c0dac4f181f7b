package analyze

import (
	"fmt"
	"strings"

	"github.com/tokensift/tokensift/internal/market"
)

// Chain describes how to recognize tokens belonging to one blockchain.
type Chain struct {
	Name            string   `yaml:"name"`
	NativeSymbol    string   `yaml:"native_symbol"`
	PlatformNames   []string `yaml:"platform_names"`
	PlatformSymbols []string `yaml:"platform_symbols"`
	TagIndicators   []string `yaml:"tag_indicators"`
}

// DefaultChains returns the built-in chain definitions.
func DefaultChains() map[string]Chain {
	return map[string]Chain{
		"ethereum": {
			Name:            "Ethereum",
			NativeSymbol:    "eth",
			PlatformNames:   []string{"ethereum"},
			PlatformSymbols: []string{"eth"},
			TagIndicators:   []string{"ethereum", "erc-20", "erc20", "eth"},
		},
		"solana": {
			Name:            "Solana",
			NativeSymbol:    "sol",
			PlatformNames:   []string{"solana"},
			PlatformSymbols: []string{"sol"},
			TagIndicators:   []string{"solana", "spl", "sol"},
		},
	}
}

// ResolveChain looks up a chain by its lowercase key.
func ResolveChain(chains map[string]Chain, name string) (Chain, error) {
	c, ok := chains[strings.ToLower(name)]
	if !ok {
		keys := make([]string, 0, len(chains))
		for k := range chains {
			keys = append(keys, k)
		}
		return Chain{}, fmt.Errorf("unknown chain: %q (known: %v)", name, keys)
	}
	return c, nil
}

// Matches reports whether a listing belongs to the chain: the native coin
// itself, a token issued on the chain's platform, or a token tagged with a
// chain indicator.
func (c Chain) Matches(l market.Listing) bool {
	if strings.EqualFold(l.Symbol, c.NativeSymbol) {
		return true
	}
	if l.Platform != nil {
		for _, n := range c.PlatformNames {
			if strings.EqualFold(l.Platform.Name, n) {
				return true
			}
		}
		for _, s := range c.PlatformSymbols {
			if strings.EqualFold(l.Platform.Symbol, s) {
				return true
			}
		}
	}
	for _, tag := range l.Tags {
		tag = strings.ToLower(tag)
		for _, ind := range c.TagIndicators {
			if tag == ind {
				return true
			}
		}
	}
	return false
}
