// Package media defines playback requests, the recognized container formats and the load error taxonomy.
package media

import (
	"errors"
	"strings"

	"github.com/samber/lo"
)

// Load failures. Every rejection or platform failure wraps exactly one of these.
var (
	ErrEmptyInput           = errors.New("empty input")
	ErrUnsupportedFormat    = errors.New("unsupported format")
	ErrUnsupportedContainer = errors.New("unsupported container")
	ErrMediaLoad            = errors.New("media load failure")
)

// Format is a recognized file extension, including the leading dot.
type Format string

const (
	MP4  Format = ".mp4"
	WebM Format = ".webm"
	Ogg  Format = ".ogg"
	MKV  Format = ".mkv"
)

// Formats lists the accepted extensions in the order they are advertised to users.
var Formats = []Format{MP4, WebM, Ogg, MKV}

// MIME types understood by media surfaces.
const (
	GenericMIME  = "video/mp4"
	MatroskaMIME = "video/x-matroska"
)

var mimeByFormat = map[Format]string{
	MP4:  "video/mp4",
	WebM: "video/webm",
	Ogg:  "video/ogg",
	MKV:  MatroskaMIME,
}

// MIME returns the content type that matches the extension.
func (f Format) MIME() string {
	return mimeByFormat[f]
}

var schemes = []string{"http://", "https://"}

// Request is a single user-supplied playback request.
type Request struct {
	URL    string
	Format Format
}

// Parse validates raw input and returns the request it describes.
//
// Blank input is empty. Otherwise the scheme and extension checks are
// case-sensitive and run on raw as given, so padding, a query string or a
// fragment after the extension is rejected.
func Parse(raw string) (Request, error) {
	if strings.TrimSpace(raw) == "" {
		return Request{}, ErrEmptyInput
	}

	if !lo.SomeBy(schemes, func(s string) bool { return strings.HasPrefix(raw, s) }) {
		return Request{}, ErrUnsupportedFormat
	}

	format, ok := lo.Find(Formats, func(f Format) bool { return strings.HasSuffix(raw, string(f)) })
	if !ok {
		return Request{}, ErrUnsupportedFormat
	}

	return Request{URL: raw, Format: format}, nil
}

// NeedsCapabilityCheck reports whether the surface must confirm it can decode the container before dispatch.
func (r Request) NeedsCapabilityCheck() bool {
	return r.Format == MKV
}

// Source describes what gets attached to a media surface.
type Source struct {
	URL  string `json:"src"`
	Type string `json:"type"`
}

// Source builds the descriptor for the request. Unless strict is set every
// source is labeled GenericMIME whatever its real extension.
func (r Request) Source(strict bool) Source {
	t := GenericMIME
	if strict {
		t = r.Format.MIME()
	}
	return Source{URL: r.URL, Type: t}
}

// SupportedList renders the accepted extensions for user-facing messages.
func SupportedList() string {
	return strings.Join(lo.Map(Formats, func(f Format, _ int) string { return string(f) }), ", ")
}
