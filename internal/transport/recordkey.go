package transport

import (
	"fmt"
	"strconv"
	"strings"
)

// TargetRecordKey is the field a reference object carries.
const TargetRecordKey = "target_record_key"

// SourceRecordKey builds the stable key returned for every created record.
func SourceRecordKey(typeName string, id uint) string {
	return fmt.Sprintf("%s:%d", typeName, id)
}

// ParseRecordKey splits "Type:Id" (or "Type:Parent:Id") into its type and
// trailing identifier. ok is false for anything malformed.
func ParseRecordKey(key string) (typeName, localID string, ok bool) {
	parts := strings.Split(strings.TrimSpace(key), ":")
	if len(parts) < 2 {
		return "", "", false
	}
	typeName, localID = parts[0], parts[len(parts)-1]
	if typeName == "" || localID == "" {
		return "", "", false
	}
	return typeName, localID, true
}

// LocalID returns the numeric primary key a record key points at.
func LocalID(key string) (uint, bool) {
	_, raw, ok := ParseRecordKey(key)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// referenceKey pulls the record key out of a reference value, which is
// either {"target_record_key": "..."} or the bare key string.
func referenceKey(ref any) (string, bool) {
	switch v := ref.(type) {
	case string:
		return v, v != ""
	case map[string]any:
		s, ok := v[TargetRecordKey].(string)
		return s, ok && s != ""
	}
	return "", false
}

// referenceID extracts the local identifier from any accepted reference form.
func referenceID(ref any) (uint, bool) {
	if key, ok := referenceKey(ref); ok {
		return LocalID(key)
	}
	if n, ok := toInt(ref); ok && n > 0 {
		return uint(n), true
	}
	return 0, false
}
