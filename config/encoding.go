package config

import (
	"fmt"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// LookupEncoding resolves character set name, WHATWG labels are tried first
// and IANA registry afterwards. Empty name means UTF-8 and results in nil
// encoding. Canonical name of the character set is returned with it.
func LookupEncoding(name string) (encoding.Encoding, string, error) {
	if name == "" {
		return nil, "utf-8", nil
	}
	if enc, canonical := charset.Lookup(name); enc != nil {
		return enc, canonical, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, "", fmt.Errorf("unknown character set %q: %w", name, err)
	}
	if enc == nil {
		return nil, "", fmt.Errorf("unsupported character set %q", name)
	}
	canonical, err := ianaindex.IANA.Name(enc)
	if err != nil {
		canonical = name
	}
	return enc, canonical, nil
}
