package urls

import (
	"net"
	"strings"

	"braces.dev/errtrace"
	"github.com/miekg/dns"
	"golang.org/x/net/idna"

	"github.com/wilsonrivera/anxiousant/internal/grammar"
	"github.com/wilsonrivera/anxiousant/internal/util"
)

const (
	maxHostLen  = 253
	maxLabelLen = 63

	idnaPrefix = "xn--"
)

type hostKindT uint8

const (
	hostUnknown hostKindT = iota
	hostIPv4
	hostIPv6
	hostDNS
)

// hostKind classifies a host string as an IPv4 literal, an IPv6 literal, a
// DNS name candidate, or unknown.
func hostKind(host string) hostKindT {
	if util.TrimSP(host) == "" {
		return hostUnknown
	}
	trimmed := strings.Trim(host, "[]")
	if ip := net.ParseIP(trimmed); ip != nil {
		if ip.To4() != nil {
			return hostIPv4
		}
		return hostIPv6
	}
	for i := 0; i < len(host); i++ {
		c := host[i]
		if c < 0x80 && !grammar.IsAlphanumChar(c) && c != '-' && c != '.' && c != '_' {
			return hostUnknown
		}
	}
	return hostDNS
}

// IsValidHostName reports whether host is a well-formed host: an IP literal,
// or a DNS name whose labels each are non-empty, at most 63 characters, free
// of leading/trailing hyphens and of "--" runs outside the IDNA prefix, with
// a total length of at most 253 characters. Non-ASCII names are converted
// through IDNA first; a failed conversion makes the name invalid.
func IsValidHostName(host string) bool {
	switch hostKind(host) {
	case hostUnknown:
		return false
	case hostIPv4, hostIPv6:
		return true
	}

	if !util.IsASCII(host) {
		ascii, err := toASCIIHost(host)
		if err != nil {
			return false
		}
		host = ascii
	}
	if len(host) > maxHostLen {
		return false
	}
	if _, ok := dns.IsDomainName(host); !ok {
		return false
	}

	for label := range strings.SplitSeq(host, ".") {
		if !isValidHostLabel(label) {
			return false
		}
	}
	return true
}

func isValidHostLabel(label string) bool {
	if label == "" || len(label) > maxLabelLen {
		return false
	}
	if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
		return false
	}
	if rest, ok := strings.CutPrefix(util.LCase(label), idnaPrefix); ok {
		label = rest
	}
	return !strings.Contains(label, "--")
}

// hasIDNALabel reports whether any label of the host carries the "xn--"
// ASCII-compatible encoding prefix.
func hasIDNALabel(host string) bool {
	for label := range strings.SplitSeq(util.LCase(host), ".") {
		if strings.HasPrefix(label, idnaPrefix) {
			return true
		}
	}
	return false
}

func toASCIIHost(host string) (string, error) {
	return errtrace.Wrap2(idna.ToASCII(host))
}

func toUnicodeHost(host string) (string, error) {
	return errtrace.Wrap2(idna.ToUnicode(host))
}
