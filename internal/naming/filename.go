package naming

import (
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// maxNameLen bounds the full filename (stem + extension).
const maxNameLen = 200

// reIllegal matches characters that are illegal on common filesystems.
var reIllegal = regexp.MustCompile(`[\\/*?:"<>|]`)

// reservedStems are device names that Windows refuses as file stems,
// matched case-insensitively.
var reservedStems = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// Sanitize replaces illegal filename characters with underscores and
// prefixes reserved device-name stems with an underscore.
func Sanitize(name string) string {
	s := reIllegal.ReplaceAllString(name, "_")
	stem := s
	if ext := path.Ext(s); ext != "" {
		stem = strings.TrimSuffix(s, ext)
	}
	if reservedStems[strings.ToUpper(stem)] {
		s = "_" + s
	}
	return s
}

// Resolve builds the full filename for a record: "{date}_{title}" sanitized,
// truncated to the length bound (stem only, extension preserved), with the
// extension chosen from the content-type and URL hints. When the record
// carries no date, today's date is used. confident is false when the
// extension fell back to the ".jpg" default; the caller decides whether to
// log that.
func Resolve(date, title, contentType, rawURL string) (name string, confident bool) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if title == "" {
		title = "untitled"
	}
	base := Sanitize(date + "_" + title)

	ext, confident := Extension(contentType, rawURL)
	if len(base)+len(ext) > maxNameLen {
		base = truncate(base, maxNameLen-len(ext))
	}
	return base + ext, confident
}

// truncate cuts s to at most n bytes without splitting a multibyte rune;
// a mid-rune cut would produce a name UTF-8-validating filesystems reject.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// imageExtByType maps image content types to their canonical extension.
// An explicit table keeps the resolver deterministic; stdlib MIME lookups
// vary with the host's mime.types.
var imageExtByType = map[string]string{
	"image/jpeg": ".jpeg",
	"image/jpg":  ".jpeg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
	"image/tiff": ".tiff",
}

// urlExtAllowed is the allow-list for deriving the extension from the URL
// suffix when the content-type gives nothing.
var urlExtAllowed = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".gif": true, ".bmp": true, ".tiff": true,
}

// Extension determines the file extension for a download. Preference order:
// content-type header (with ".jpe" normalized to ".jpeg"), then a
// recognized URL suffix, then the ".jpg" default with confident=false.
func Extension(contentType, rawURL string) (ext string, confident bool) {
	if ct := mediaType(contentType); ct != "" {
		if e, ok := imageExtByType[ct]; ok {
			return e, true
		}
	}

	if u, err := url.Parse(rawURL); err == nil {
		e := strings.ToLower(path.Ext(u.Path))
		if e == ".jpe" {
			e = ".jpeg"
		}
		if urlExtAllowed[e] {
			return e, true
		}
	}

	return ".jpg", false
}

// mediaType strips any content-type parameters ("image/jpeg; charset=…")
// and lowercases the result.
func mediaType(contentType string) string {
	ct := contentType
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
