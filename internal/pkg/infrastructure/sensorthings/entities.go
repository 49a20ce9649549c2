package sensorthings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

//Entity keeps the members of a SensorThings entity undecoded until they are
//looked up by name
type Entity map[string]json.RawMessage

//Collection is the envelope around an entity set response
type Collection struct {
	Value []Entity `json:"value"`
}

//DecodeOptional decodes raw into v and reports whether it succeeded. Missing and
//null members are not decoded.
func DecodeOptional(raw json.RawMessage, v any) bool {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

//IDString normalizes an @iot.id, which servers may send as a number or a string
func IDString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}

	return ""
}

//EntityPath addresses a single entity in an entity set. Numeric ids are written
//bare, other ids as quoted OData string literals.
func EntityPath(entitySet, id string) string {
	if _, err := strconv.ParseInt(id, 10, 64); err == nil {
		return fmt.Sprintf("%s(%s)", entitySet, id)
	}

	literal := "'" + strings.ReplaceAll(id, "'", "''") + "'"
	return fmt.Sprintf("%s(%s)", entitySet, url.PathEscape(literal))
}

//Escape percent-encodes a query value, writing spaces as %20
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
