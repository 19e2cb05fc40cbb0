// Package header provides parsing, rendering and matching of the HTTP
// content negotiation headers defined by RFC 7231 Section 5.3.
//
// # Overview
//
// The package provides a list type for each header of the Accept-* family:
//
//	Accept          → [Accept] of [MediaType]
//	Accept-Charset  → [AcceptCharset] of [Charset]
//	Accept-Encoding → [AcceptEncoding] of [Encoding]
//	Accept-Language → [AcceptLanguage] of [Language]
//
// Every entry type implements [Item], which is all a negotiator needs:
// the entry weight, a match predicate against a concrete candidate value,
// an explicit rejection predicate and a preference ordering.
//
// # Parsing
//
// Header parsing is lenient. Entries that do not conform to the header grammar
// are skipped, malformed q values get [FallbackWeight], an empty header value
// yields the single wildcard entry with [MaxWeight]. Parsed lists are sorted
// from the most to the least preferred entry:
//
//	hdr := header.ParseAccept("text/plain; q=0.5, text/html, text/*;q=0.1")
//	fmt.Println(hdr) // text/html;q=1,text/plain;q=0.5,text/*;q=0.1
//
// The header name prefix is optional, so both "Accept: text/html" and "text/html"
// give the same result. Use [Parse] to parse a full header line when its name
// is not known in advance.
//
// # Construction
//
// Entries built directly with [NewMediaType], [NewCharset], [NewEncoding] or
// [NewLanguage] validate the weight strictly and fail with [ErrInvalidWeight],
// [ErrOutOfRange] or [ErrInvalidPrecision]. Use [errors.Is] to check the error kind.
//
// # Rendering
//
// Entries render in the canonical form "value;q=weight" followed by parameters.
// Header lists render entries joined by a comma. RenderTo methods write to any
// [io.Writer], Render returns the full header line including the name.
// All types implement [fmt.Formatter]: %s prints the value, %+s prints
// the full header line.
package header
