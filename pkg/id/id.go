package id

import (
	"strings"

	"github.com/fox-one/pkg/uuid"
)

// GenTraceID new normal traceID
func GenTraceID() string {
	return uuid.New()
}

// TraceIDFrom new traceID from text
func TraceIDFrom(parts ...string) string {
	return UUIDFromString(strings.Join(parts, ":"))
}

// UUIDFromString  new uuid string from string
func UUIDFromString(text string) string {
	return uuid.MD5(text)
}
