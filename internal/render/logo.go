package render

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var logoMIMETypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
}

// LogoDataURI reads an image file and returns it as a base64 data URI for
// inline embedding in the document header. An empty path yields an empty
// string so the template degrades to a blank logo slot.
func LogoDataURI(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read logo: %w", err)
	}
	mime, ok := logoMIMETypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}
