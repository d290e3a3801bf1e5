package urls

import (
	"strings"

	"github.com/wilsonrivera/anxiousant/internal/errorutil"
	"github.com/wilsonrivera/anxiousant/internal/grammar"
	"github.com/wilsonrivera/anxiousant/internal/util"
)

// WithScheme sets the scheme and returns the receiver. A blank value clears
// the scheme. It panics when the value violates the scheme grammar, before
// any field is written.
func (u *URL) WithScheme(scheme string) *URL {
	scheme = util.TrimSP(scheme)
	if scheme != "" && !isValidScheme(scheme) {
		panic(errorutil.NewInvalidArgumentError("scheme %q", scheme))
	}
	u.scheme = scheme
	u.restoreLeadingSlash()
	u.invalidate(fieldScheme)
	return u
}

// restoreLeadingSlash re-establishes the leading-slash invariant after a
// mutation that may have turned a relative URL absolute: an absolute URL with
// path segments always renders a rooted path.
func (u *URL) restoreLeadingSlash() {
	if !u.leadingSlash && !u.IsRelative() && len(u.segments) > 0 {
		u.leadingSlash = true
		u.invalidate(fieldPath)
	}
}

func isValidScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if i == 0 {
			if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
				return false
			}
			continue
		}
		if !grammar.IsAlphanumChar(c) && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}

// WithUsername sets the user-info username. A blank value clears it.
func (u *URL) WithUsername(username string) *URL {
	u.username = util.TrimSP(username)
	u.invalidate(fieldUserInfo)
	return u
}

// WithPassword sets the user-info password. A blank value clears it.
func (u *URL) WithPassword(password string) *URL {
	u.password = util.TrimSP(password)
	u.invalidate(fieldUserInfo)
	return u
}

// ClearUserInfo removes both username and password.
func (u *URL) ClearUserInfo() *URL {
	u.username = ""
	u.password = ""
	u.invalidate(fieldUserInfo)
	return u
}

// WithHost sets the host and returns the receiver. A blank value clears the
// host. It panics when the value is neither an IP literal nor a valid host
// name, before any field is written.
func (u *URL) WithHost(host string) *URL {
	host = util.TrimSP(host)
	if host != "" && !IsValidHostName(host) {
		panic(errorutil.NewInvalidArgumentError("host %q", host))
	}
	u.host = strings.Trim(host, "[]")
	u.restoreLeadingSlash()
	u.invalidate(fieldHost)
	return u
}

// WithAsciiHost converts an internationalized DNS host to its IDNA ASCII
// ("xn--") form. Hosts that are empty, not DNS names, or already ASCII are
// left untouched and the receiver is returned unchanged without allocation.
// A failing IDNA conversion also leaves the host untouched.
func (u *URL) WithAsciiHost() *URL {
	if u.host == "" || hostKind(u.host) != hostDNS || util.IsASCII(u.host) {
		return u
	}
	ascii, err := toASCIIHost(u.host)
	if err != nil {
		return u
	}
	u.host = ascii
	u.invalidate(fieldHost)
	return u
}

// WithUnicodeHost converts an IDNA ASCII host back to its Unicode form. Only
// hosts carrying at least one "xn--" label are converted; everything else is
// returned unchanged without allocation.
func (u *URL) WithUnicodeHost() *URL {
	if u.host == "" || hostKind(u.host) != hostDNS || !hasIDNALabel(u.host) {
		return u
	}
	uni, err := toUnicodeHost(u.host)
	if err != nil {
		return u
	}
	u.host = uni
	u.invalidate(fieldHost)
	return u
}

// WithPort sets the port.
func (u *URL) WithPort(port uint16) *URL {
	u.port = port
	u.hasPort = true
	u.invalidate(fieldPort)
	return u
}

// ClearPort removes the port.
func (u *URL) ClearPort() *URL {
	u.port = 0
	u.hasPort = false
	u.invalidate(fieldPort)
	return u
}

// WithFragment sets the fragment. A single leading '#' is stripped; a blank
// value clears the fragment.
func (u *URL) WithFragment(fragment string) *URL {
	u.fragment = strings.TrimPrefix(util.TrimSP(fragment), "#")
	u.invalidate(fieldFragment)
	return u
}

// AddPathSegment appends a path segment. A segment containing "/" is split
// and each non-empty piece is percent-encoded and appended individually; the
// trailing-slash flag then mirrors whether the input ended in "/". A plain
// segment is encoded and appended as a single piece, clearing the
// trailing-slash flag. An absolute URL always gains a leading slash.
func (u *URL) AddPathSegment(segment string) *URL {
	if strings.Contains(segment, "/") {
		for piece := range strings.SplitSeq(segment, "/") {
			if piece == "" {
				continue
			}
			u.segments = append(u.segments, grammar.EscapeIllegal(piece))
		}
		u.trailingSlash = strings.HasSuffix(segment, "/")
	} else {
		u.segments = append(u.segments, grammar.EscapeIllegal(segment))
		u.trailingSlash = false
	}
	if !u.IsRelative() {
		u.leadingSlash = true
	}
	u.invalidate(fieldPath)
	return u
}

// AddPathSegments appends each segment in order via [URL.AddPathSegment].
func (u *URL) AddPathSegments(segments ...string) *URL {
	for _, seg := range segments {
		u.AddPathSegment(seg)
	}
	return u
}

// PopPathSegment removes and returns the last path segment. It reports false
// when no segments exist.
func (u *URL) PopPathSegment() (string, bool) {
	if len(u.segments) == 0 {
		return "", false
	}
	seg := u.segments[len(u.segments)-1]
	u.segments = u.segments[:len(u.segments)-1]
	u.invalidate(fieldPath)
	return seg, true
}

// ClearPath removes all path segments and both slash flags.
func (u *URL) ClearPath() *URL {
	u.segments = nil
	u.leadingSlash = false
	u.trailingSlash = false
	u.invalidate(fieldPath)
	return u
}

// AddQueryParam appends a query parameter; a nil value is routed through the
// null-handling policy.
func (u *URL) AddQueryParam(key string, value any, nullHandling NullValueHandling) *URL {
	u.query.Add(key, value, nullHandling)
	u.invalidate(fieldQuery)
	return u
}

// SetQueryParam adds the parameter or replaces all existing occurrences of
// the key with a single one at the position of the first.
func (u *URL) SetQueryParam(key string, value any, nullHandling NullValueHandling) *URL {
	u.query.AddOrReplace(key, value, nullHandling)
	u.invalidate(fieldQuery)
	return u
}

// RemoveQueryParam removes all occurrences of the key.
func (u *URL) RemoveQueryParam(key string) *URL {
	u.query.Remove(key)
	u.invalidate(fieldQuery)
	return u
}

// RemoveQueryParams removes all occurrences of each key.
func (u *URL) RemoveQueryParams(keys ...string) *URL {
	for _, key := range keys {
		u.query.Remove(key)
	}
	u.invalidate(fieldQuery)
	return u
}

// ClearQuery removes all query parameters.
func (u *URL) ClearQuery() *URL {
	u.query.Clear()
	u.invalidate(fieldQuery)
	return u
}
