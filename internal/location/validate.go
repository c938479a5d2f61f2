package location

import (
	"regexp"
	"strings"
)

// ErrorKind identifies which validation rule failed.
type ErrorKind string

const (
	KindMissingLocation    ErrorKind = "missing_location"
	KindInvalidAddress     ErrorKind = "invalid_address"
	KindInvalidZipCode     ErrorKind = "invalid_zip_code"
	KindInvalidCoordinates ErrorKind = "invalid_coordinates"
)

// ValidationError describes a single failed input rule.
type ValidationError struct {
	Kind    ErrorKind
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

var (
	zipRe     = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	numericRe = regexp.MustCompile(`^\d+$`)
	letterRe  = regexp.MustCompile(`[A-Za-z]`)
	scriptRe  = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	tagRe     = regexp.MustCompile(`<[^>]*>`)
	unsafeRe  = regexp.MustCompile(`[^A-Za-z0-9 \-.,]`)
	wsRunRe   = regexp.MustCompile(`\s+`)
)

// Validate applies every input rule independently and returns all failures,
// so the caller can surface them together.
func Validate(in Input) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(in.Address) == "" && strings.TrimSpace(in.ZipCode) == "" && !in.HasCoordinates() {
		errs = append(errs, ValidationError{
			Kind:    KindMissingLocation,
			Message: "location is required: provide an address, zip code, or coordinates",
		})
	}

	if addr := strings.TrimSpace(in.Address); addr != "" {
		if len(addr) < 3 || numericRe.MatchString(addr) || !letterRe.MatchString(addr) {
			errs = append(errs, ValidationError{
				Kind:    KindInvalidAddress,
				Message: "address must be at least 3 characters and contain letters",
			})
		}
	}

	if zip := strings.TrimSpace(in.ZipCode); zip != "" {
		if !zipRe.MatchString(zip) {
			errs = append(errs, ValidationError{
				Kind:    KindInvalidZipCode,
				Message: "zip code must look like 12345 or 12345-6789",
			})
		}
	}

	if in.HasCoordinates() {
		if !InRange(*in.Lat, *in.Lon) {
			errs = append(errs, ValidationError{
				Kind:    KindInvalidCoordinates,
				Message: "latitude must be within [-90,90] and longitude within [-180,180]",
			})
		}
	}

	return errs
}

// ValidZip reports whether zip matches the 5-digit (optionally +4) format.
func ValidZip(zip string) bool {
	return zipRe.MatchString(zip)
}

// Sanitize normalizes free-text input for safe downstream use: script blocks
// and markup tags are removed, anything outside [A-Za-z0-9 \-.,] is dropped,
// and whitespace runs collapse to a single space.
func Sanitize(s string) string {
	s = scriptRe.ReplaceAllString(s, "")
	s = tagRe.ReplaceAllString(s, "")
	s = unsafeRe.ReplaceAllString(s, "")
	s = wsRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
