package postgres

import (
	"encoding/json"
	"fmt"
	"strings"
)

// placeholder returns the n-th placeholder for PostgreSQL ($1, $2, ...)
func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// placeholders returns n sequential placeholders.
func placeholders(n int) string {
	list := []string{}
	for i := 0; i < n; i++ {
		list = append(list, placeholder(i+1))
	}
	return strings.Join(list, ", ")
}

// marshalTags encodes tags as a JSON array; the empty list is stored as "[]".
func marshalTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	buf, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(buf)
}

func unmarshalTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil
	}
	return tags
}

// tagPattern matches a JSON-encoded tag inside the tags column with LIKE.
func tagPattern(tag string) string {
	return `%"` + tag + `"%`
}
