// Package helper holds the naming rules shared by the web handlers and the CLI.
package helper

import (
	"math"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// AllowedExtensions are the upload extensions accepted, lower case without the dot
var AllowedExtensions = map[string]bool{"wav": true}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// AllowedFile reports whether filename carries an allowed extension
func AllowedFile(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	return AllowedExtensions[strings.ToLower(filename[i+1:])]
}

// SecureFilename reduces a client supplied name to a flat ASCII name that is
// safe to join to a directory. It may return an empty string.
func SecureFilename(filename string) string {
	filename = norm.NFKD.String(filename)

	ascii := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		if filename[i] < 0x80 {
			ascii = append(ascii, filename[i])
		}
	}
	filename = string(ascii)
	filename = strings.NewReplacer("/", " ", `\`, " ").Replace(filename)
	filename = strings.Join(strings.Fields(filename), "_")
	filename = unsafeFilenameChars.ReplaceAllString(filename, "")
	return strings.Trim(filename, "._")
}

// IsSafeName reports whether name can be served from the upload folder
// without escaping it
func IsSafeName(name string) bool {
	if name == "" || name == "." || strings.Contains(name, "..") {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}

// FormatFactor renders a factor the way the effect binaries and the output
// names expect it: always with a fractional part, e.g. 2 becomes "2.0".
func FormatFactor(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// OutputName is the name of the processed copy of an upload
func OutputName(fileID, effect string, factor float64) string {
	return fileID + "_" + effect + "_" + FormatFactor(factor) + ".wav"
}

// UploadName is the stored name of an upload
func UploadName(fileID, filename string) string {
	return fileID + "_" + filename
}
