// Package urls provides a mutable URL value model with a fluent builder
// surface and an order-preserving query parameter collection.
//
// # Overview
//
// The central type is [URL]: a structured, mutable URL whose canonical string
// form is rebuilt lazily after mutations. Unlike [net/url.URL], it accepts
// lenient real-world inputs:
//
//	u, _ := urls.Parse("//cdn.example.com/assets")   // protocol-relative
//	u, _ = urls.Parse("/just/a/path")                // path-absolute
//	u, _ = urls.Parse("api/v2/users?active")         // purely relative
//
// Relative and protocol-relative inputs keep their shape: parsing never
// invents a scheme or host that the input did not carry, and serializing the
// parsed value restores the original form.
//
// # Building
//
// Mutators return the receiver so URLs can be assembled fluently:
//
//	u := urls.MustParse("https://example.com").
//		AddPathSegment("search").
//		AddQueryParam("q", "go urls", urls.NullValueNameOnly).
//		WithFragment("results")
//	// https://example.com/search?q=go%20urls#results
//
// # Query parameters
//
// [QueryParams] is an ordered multimap. Each value stores both its decoded
// and its encoded form, captured once when the pair is created, so a query
// string that arrives validly encoded round-trips byte for byte. Absent (nil)
// values are handled per [NullValueHandling]: stored as a bare key, treated
// as a removal, or ignored.
//
// # Internationalized hosts
//
// [URL.WithAsciiHost] and [URL.WithUnicodeHost] convert DNS hosts between
// their Unicode and IDNA ASCII ("xn--") forms; [IsValidHostName] validates
// IP literals and DNS names including internationalized ones.
//
// # Concurrency
//
// URL and QueryParams values are plain mutable data structures without
// internal locking. Share copies created with Clone across goroutines, or
// synchronize externally.
package urls
