package textutil

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"regexp"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/unicode/norm"
)

var xmlDeclEncoding = regexp.MustCompile(`^\s*<\?xml[^>]*\bencoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)

// DecodePage converts a fetched page to UTF-8 text. The charset comes from the
// Content-Type header when it names one, then from the XML declaration, and is
// otherwise sniffed from the content.
func DecodePage(body []byte, contentType string) (string, error) {
	var (
		r   io.Reader
		err error
	)

	if label := declaredCharset(body, contentType); label != "" {
		r, err = charset.NewReaderLabel(label, bytes.NewReader(body))
	} else {
		r, err = charset.NewReader(bytes.NewReader(body), contentType)
	}
	if err != nil {
		return "", fmt.Errorf("decoding page: %w", err)
	}

	text, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("decoding page: %w", err)
	}

	return norm.NFC.String(string(text)), nil
}

func declaredCharset(body []byte, contentType string) string {
	if _, params, err := mime.ParseMediaType(contentType); err == nil && params["charset"] != "" {
		return params["charset"]
	}

	if m := xmlDeclEncoding.FindSubmatch(body); m != nil {
		return string(m[1])
	}

	return ""
}
