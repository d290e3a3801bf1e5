package urls

//go:generate mockgen -destination ../internal/testutil/parsemock/parsemock.go -package parsemock github.com/wilsonrivera/anxiousant/urls AddressParser

import (
	"net/url"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/wilsonrivera/anxiousant/internal/errorutil"
	"github.com/wilsonrivera/anxiousant/internal/grammar"
	"github.com/wilsonrivera/anxiousant/internal/util"
)

const (
	// ErrBlankInput is returned by Parse when the input is empty or blank.
	ErrBlankInput errorutil.Error = "blank input"
	// ErrMalformedURL is returned by Parse when the underlying address
	// parser rejects the normalized absolute form of the input.
	ErrMalformedURL errorutil.Error = "malformed url"
)

// Placeholders inserted to satisfy the strict absolute parser; the quirks-fix
// pass removes them again.
const (
	placeholderScheme = "http"
	placeholderHost   = "example.com"
)

// Components is the raw outcome of a strict absolute-URL parse, before any
// quirks fixing.
type Components struct {
	Scheme      string
	Username    string
	Password    string
	HasPassword bool
	Host        string
	Port        string // decimal, empty when absent
	EscapedPath string // rooted hierarchical path, empty when the URL is opaque
	Opaque      string // opaque part for non-hierarchical URLs
	RawQuery    string
	Fragment    string // escaped form
}

// AddressParser is the strategy that parses a well-formed absolute URL string
// into raw components. The package-level functions use [NetURLParser]; the
// indirection exists so the lenient pre/post passes can be exercised against
// arbitrary strict parsers.
type AddressParser interface {
	ParseAbsolute(s string) (Components, error)
}

// NetURLParser is the default AddressParser backed by [net/url.Parse].
type NetURLParser struct{}

// ParseAbsolute implements [AddressParser].
func (NetURLParser) ParseAbsolute(s string) (Components, error) {
	su, err := url.Parse(s)
	if err != nil {
		return Components{}, errtrace.Wrap(err)
	}

	c := Components{
		Scheme:      su.Scheme,
		Host:        su.Hostname(),
		Port:        su.Port(),
		EscapedPath: su.EscapedPath(),
		Opaque:      su.Opaque,
		RawQuery:    su.RawQuery,
		Fragment:    su.EscapedFragment(),
	}
	if su.User != nil {
		c.Username = su.User.Username()
		c.Password, c.HasPassword = su.User.Password()
	}
	return c, nil
}

// urlShape classifies raw input before structural parsing, because the strict
// underlying parser requires an absolute URL.
type urlShape uint8

const (
	shapeAbsolute       urlShape = iota
	shapeSchemeRelative          // starts with "//"
	shapePathAbsolute            // starts with a single "/"
	shapeRelative                // everything else without a scheme
)

func classify(s string) urlShape {
	switch {
	case strings.HasPrefix(s, "//"):
		return shapeSchemeRelative
	case strings.HasPrefix(s, "/"):
		return shapePathAbsolute
	case !hasSchemePrefix(s):
		return shapeRelative
	default:
		return shapeAbsolute
	}
}

// hasSchemePrefix reports whether s starts with "scheme:" where scheme
// follows the ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ) rule.
func hasSchemePrefix(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ':':
			return i > 0
		case grammar.IsAlphanumChar(c) || c == '+' || c == '-' || c == '.':
			if i == 0 && !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
				return false
			}
		default:
			return false
		}
	}
	return false
}

// hasAuthorityMarker reports whether the original absolute string carried an
// explicit authority, i.e. had the "scheme://" form.
func hasAuthorityMarker(s string) bool {
	i := strings.Index(s, ":")
	if i < 0 {
		return false
	}
	return strings.HasPrefix(s[i+1:], "//")
}

// Parse parses a URL string leniently: absolute, protocol-relative,
// path-absolute and purely relative inputs are all accepted. It returns an
// error on blank or unparsable input.
func Parse(s string) (*URL, error) {
	return errtrace.Wrap2(ParseWith(NetURLParser{}, s))
}

// MustParse is like [Parse] but panics on error. It simplifies variable
// initialization with known-good inputs.
func MustParse(s string) *URL {
	return util.Must2(Parse(s))
}

// ParseWith parses a URL string through the provided strict address parser,
// applying the lenient shape normalization before the parse and the
// quirks-fix pass after it.
func ParseWith(p AddressParser, s string) (*URL, error) {
	s = util.TrimSP(s)
	if s == "" {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError(ErrBlankInput))
	}

	sh := classify(s)
	abs := s
	switch sh {
	case shapeSchemeRelative:
		abs = placeholderScheme + ":" + s
	case shapePathAbsolute:
		abs = placeholderScheme + "://" + placeholderHost + s
	case shapeRelative:
		abs = placeholderScheme + "://" + placeholderHost + "/" + s
	}

	c, err := p.ParseAbsolute(abs)
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedURL, err))
	}

	u := &URL{
		scheme:   c.Scheme,
		username: c.Username,
		password: c.Password,
		host:     c.Host,
		fragment: c.Fragment,
	}
	if c.Port != "" {
		port, err := strconv.ParseUint(c.Port, 10, 16)
		if err != nil {
			return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedURL, err))
		}
		u.port = uint16(port)
		u.hasPort = true
	}

	path := c.EscapedPath
	if c.Opaque != "" {
		path = c.Opaque
	}

	// Quirks fix: remove the placeholders again and reconcile the two
	// ambiguous host-versus-path shapes.
	switch sh {
	case shapeSchemeRelative:
		u.scheme = ""
	case shapePathAbsolute:
		u.scheme = ""
		u.host = ""
		u.port, u.hasPort = 0, false
	case shapeRelative:
		u.scheme = ""
		u.host = ""
		u.port, u.hasPort = 0, false
		path = strings.TrimPrefix(path, "/")
	case shapeAbsolute:
		hadAuth := hasAuthorityMarker(s)
		switch {
		case u.host == "" && hadAuth && path != "" && !strings.HasPrefix(path, "/"):
			// The parser treated the input as opaque although the original
			// carried an authority marker: promote the first path segment.
			var rest string
			u.host, rest, _ = strings.Cut(path, "/")
			path = ""
			if rest != "" {
				path = "/" + rest
			}
		case u.host != "" && !hadAuth:
			// The parser synthesized an authority the original never had:
			// demote it back into the first path segment, user info included.
			seg := u.host
			if u.hasPort {
				seg += ":" + strconv.Itoa(int(u.port))
			}
			if u.username != "" || u.password != "" {
				ui := u.username
				if u.password != "" {
					ui += ":" + u.password
				}
				seg = ui + "@" + seg
				u.username, u.password = "", ""
			}
			path = seg + path
			u.host = ""
			u.port, u.hasPort = 0, false
		}
	}

	u.leadingSlash = strings.HasPrefix(path, "/")
	u.segments = splitPath(path)
	u.trailingSlash = strings.HasSuffix(path, "/") && len(u.segments) > 0

	if c.RawQuery != "" {
		u.query = *ParseQuery(c.RawQuery)
	}
	return u, nil
}

// splitPath splits a path into its non-empty, already-encoded segments.
func splitPath(path string) []string {
	var segs []string
	for seg := range strings.SplitSeq(path, "/") {
		if seg == "" {
			continue
		}
		segs = append(segs, grammar.EscapeIllegal(seg))
	}
	return segs
}

// FromStdURL converts a [net/url.URL] into a URL, adopting its components
// without re-parsing.
func FromStdURL(su *url.URL) *URL {
	if su == nil {
		return nil
	}

	u := &URL{
		scheme:   su.Scheme,
		host:     su.Hostname(),
		fragment: su.EscapedFragment(),
	}
	if su.User != nil {
		u.username = su.User.Username()
		u.password, _ = su.User.Password()
	}
	if p := su.Port(); p != "" {
		if port, err := strconv.ParseUint(p, 10, 16); err == nil {
			u.port = uint16(port)
			u.hasPort = true
		}
	}
	path := su.EscapedPath()
	if su.Opaque != "" {
		path = su.Opaque
	}
	u.leadingSlash = strings.HasPrefix(path, "/")
	u.segments = splitPath(path)
	u.trailingSlash = strings.HasSuffix(path, "/") && len(u.segments) > 0
	if su.RawQuery != "" {
		u.query = *ParseQuery(su.RawQuery)
	}
	return u
}

// StdURL converts the URL into a [net/url.URL] by re-parsing its canonical
// string form.
func (u *URL) StdURL() (*url.URL, error) {
	if u == nil {
		return nil, nil
	}
	return errtrace.Wrap2(url.Parse(u.String()))
}
