package fetch

import "strings"

// Kind classifies a fetched payload.
type Kind int

const (
	KindHTML Kind = iota
	KindText
	KindBinary
)

const sniffLength = 100

var binaryTypePrefixes = []string{"image/", "audio/", "video/", "application/", "font/"}

// Classify decides how a payload should be handled from its declared
// content type and a prefix sniff of the body. An absent content type
// is assumed to be HTML, including for untyped JSON responses.
func Classify(body, contentType string) Kind {
	for _, prefix := range binaryTypePrefixes {
		if strings.Contains(contentType, prefix) {
			return KindBinary
		}
	}
	head := body
	if len(head) > sniffLength {
		head = head[:sniffLength]
	}
	if strings.Contains(strings.ToLower(head), "<html") ||
		strings.Contains(contentType, "text/html") ||
		contentType == "" {
		return KindHTML
	}
	return KindText
}
