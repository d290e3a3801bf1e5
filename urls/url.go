package urls

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/wilsonrivera/anxiousant/internal/ioutil"
	"github.com/wilsonrivera/anxiousant/internal/util"
)

// URL is a mutable URL value. The zero value is an empty relative URL.
//
// Component mutators return the receiver so calls can be chained. Derived
// strings (user info, authority, root, path, the full string) are computed on
// first access and cached until a mutation touches one of the fields they
// depend on. URL values are not safe for concurrent mutation; share copies
// created with [URL.Clone] instead.
type URL struct {
	scheme        string
	username      string
	password      string
	host          string
	port          uint16
	hasPort       bool
	segments      []string // each element already percent-encoded
	leadingSlash  bool
	trailingSlash bool
	query         QueryParams
	fragment      string

	caches urlCaches
}

type urlCaches struct {
	userInfo  *string
	authority *string
	root      *string
	path      *string
	full      *string
	queryVer  uint32 // query version the full string was rendered with
}

// urlField identifies a logical group of URL fields for cache invalidation.
type urlField uint8

const (
	fieldScheme urlField = iota
	fieldUserInfo
	fieldHost
	fieldPort
	fieldPath
	fieldQuery
	fieldFragment
)

type cacheMask uint8

const (
	cacheUserInfo cacheMask = 1 << iota
	cacheAuthority
	cacheRoot
	cachePath
	cacheFull
)

// invalidationTable maps each mutated field group to the caches it renders
// stale. Every mutator goes through this table instead of clearing caches ad
// hoc, so the dependency set stays in one testable place.
var invalidationTable = map[urlField]cacheMask{
	fieldScheme:   cacheRoot | cacheFull,
	fieldUserInfo: cacheUserInfo | cacheAuthority | cacheRoot | cacheFull,
	fieldHost:     cacheAuthority | cacheRoot | cacheFull,
	fieldPort:     cacheAuthority | cacheRoot | cacheFull,
	fieldPath:     cachePath | cacheFull,
	fieldQuery:    cacheFull,
	fieldFragment: cacheFull,
}

func (u *URL) invalidate(f urlField) {
	m := invalidationTable[f]
	if m&cacheUserInfo != 0 {
		u.caches.userInfo = nil
	}
	if m&cacheAuthority != 0 {
		u.caches.authority = nil
	}
	if m&cacheRoot != 0 {
		u.caches.root = nil
	}
	if m&cachePath != 0 {
		u.caches.path = nil
	}
	if m&cacheFull != 0 {
		u.caches.full = nil
	}
}

// Scheme returns the URL scheme, or the empty string when none is set.
func (u *URL) Scheme() string { return u.scheme }

// Username returns the user-info username part.
func (u *URL) Username() string { return u.username }

// Password returns the user-info password part.
func (u *URL) Password() string { return u.password }

// Host returns the host, or the empty string when none is set.
func (u *URL) Host() string { return u.host }

// Port returns the port and a flag indicating whether one is set.
func (u *URL) Port() (uint16, bool) { return u.port, u.hasPort }

// PathSegments returns a copy of the percent-encoded path segments.
func (u *URL) PathSegments() []string { return slices.Clone(u.segments) }

// HasLeadingSlash reports whether the path renders with a leading slash.
func (u *URL) HasLeadingSlash() bool { return u.leadingSlash }

// HasTrailingSlash reports whether the path renders with a trailing slash.
func (u *URL) HasTrailingSlash() bool { return u.trailingSlash }

// Query returns the query parameter collection owned by this URL.
func (u *URL) Query() *QueryParams { return &u.query }

// Fragment returns the fragment, without the leading '#'.
func (u *URL) Fragment() string { return u.fragment }

// IsRelative reports whether the URL has neither scheme nor host.
func (u *URL) IsRelative() bool { return u.scheme == "" && u.host == "" }

// IsAbsolute reports whether the URL has a scheme or a host.
func (u *URL) IsAbsolute() bool { return !u.IsRelative() }

// IsSecure reports whether the scheme is a TLS-carrying one.
func (u *URL) IsSecure() bool {
	return util.EqFold(u.scheme, "https") ||
		util.EqFold(u.scheme, "wss") ||
		util.EqFold(u.scheme, "ftps")
}

// SchemeIs reports whether the scheme matches s case-insensitively.
func (u *URL) SchemeIs(s string) bool { return util.EqFold(u.scheme, s) }

// UserInfo returns "username", "username:password", or the empty string. A
// password without a username renders as ":password", so a parsed
// "scheme://:pw@host" form survives a round trip.
func (u *URL) UserInfo() string {
	if u.caches.userInfo != nil {
		return *u.caches.userInfo
	}

	var s string
	if u.username != "" || u.password != "" {
		s = u.username
		if u.password != "" {
			s += ":" + u.password
		}
	}
	u.caches.userInfo = &s
	return s
}

// Authority returns "userinfo@host:port", omitting the "@" part when there is
// no user info and the ":port" part when no port is set.
func (u *URL) Authority() string {
	if u.caches.authority != nil {
		return *u.caches.authority
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	if ui := u.UserInfo(); ui != "" {
		sb.WriteString(ui)
		sb.WriteString("@")
	}
	sb.WriteString(hostForRender(u.host))
	if u.hasPort {
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(int(u.port)))
	}
	s := sb.String()
	u.caches.authority = &s
	return s
}

// hostForRender re-adds brackets around IPv6 literals.
func hostForRender(host string) string {
	if strings.Contains(host, ":") && !strings.HasPrefix(host, "[") {
		return "[" + host + "]"
	}
	return host
}

// Root returns "scheme://authority". The "scheme:" part is omitted when the
// scheme is empty and the "//" part when the authority is empty, so a
// scheme-relative URL renders as "//host" and a relative one as "".
func (u *URL) Root() string {
	if u.caches.root != nil {
		return *u.caches.root
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	if u.scheme != "" {
		sb.WriteString(u.scheme)
		sb.WriteString(":")
	}
	if auth := u.Authority(); auth != "" {
		sb.WriteString("//")
		sb.WriteString(auth)
	}
	s := sb.String()
	u.caches.root = &s
	return s
}

// Path returns the rendered path: a leading slash when flagged, the encoded
// segments joined with "/", and a trailing slash when flagged and at least
// one segment exists.
func (u *URL) Path() string {
	if u.caches.path != nil {
		return *u.caches.path
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	if u.leadingSlash {
		sb.WriteString("/")
	}
	sb.WriteString(strings.Join(u.segments, "/"))
	if u.trailingSlash && len(u.segments) > 0 {
		sb.WriteString("/")
	}
	s := sb.String()
	u.caches.path = &s
	return s
}

// QueryString returns the serialized query without a leading '?'.
func (u *URL) QueryString() string { return u.query.String() }

// String returns the canonical full URL string.
func (u *URL) String() string {
	if u == nil {
		return ""
	}
	if u.caches.full != nil && u.caches.queryVer == u.query.version {
		return *u.caches.full
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	sb.WriteString(u.Root())
	sb.WriteString(u.Path())
	if q := u.query.String(); q != "" {
		sb.WriteString("?")
		sb.WriteString(q)
	}
	if u.fragment != "" {
		sb.WriteString("#")
		sb.WriteString(u.fragment)
	}
	s := sb.String()
	u.caches.full = &s
	u.caches.queryVer = u.query.version
	return s
}

// RenderTo writes the canonical full URL string to w.
func (u *URL) RenderTo(w io.Writer) (num int, err error) {
	if u == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(u.Root())    //nolint:errcheck
	cw.WriteString(u.Path())    //nolint:errcheck
	if q := u.query.String(); q != "" {
		cw.Fprint("?", q) //nolint:errcheck
	}
	if u.fragment != "" {
		cw.Fprint("#", u.fragment) //nolint:errcheck
	}
	return errtrace.Wrap2(cw.Result())
}

// Format implements fmt.Formatter for custom formatting of the URL.
func (u *URL) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			u.RenderTo(f) //nolint:errcheck
			return
		}
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		type hideMethods URL
		type URL hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*URL)(u))
		return
	}
}

// Equal compares this URL with another for structural equality. Scheme and
// host are compared case-insensitively, every other component ordinally.
func (u *URL) Equal(val any) bool {
	var other *URL
	switch v := val.(type) {
	case URL:
		other = &v
	case *URL:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}

	return util.EqFold(u.scheme, other.scheme) &&
		util.EqFold(u.host, other.host) &&
		u.username == other.username &&
		u.password == other.password &&
		u.port == other.port &&
		u.hasPort == other.hasPort &&
		u.Path() == other.Path() &&
		u.query.String() == other.query.String() &&
		u.fragment == other.fragment
}

// Clone returns a deep, independent copy. Cached derived strings are not
// shared; the copy recomputes its own.
func (u *URL) Clone() *URL {
	if u == nil {
		return nil
	}
	u2 := *u
	u2.segments = slices.Clone(u.segments)
	u2.query = QueryParams{kvs: u.query.kvs.Clone(), cached: u.query.cached, version: u.query.version}
	u2.caches = urlCaches{}
	return &u2
}
