package jwt

import (
	"encoding/json"
	"time"
)

// Clock is used to validate tokens expiration if the "exp" (expiration) exists in the payload.
// It can be overridden to use any other time value, useful for testing.
//
// Usage: now := Clock()
var Clock = time.Now

// Marshal and Unmarshal are the JSON codec used to serialize
// the header and claims segments and to parse them back.
// They can be replaced by any encoding/json compatible implementation.
var (
	Marshal   = json.Marshal
	Unmarshal = json.Unmarshal
)

// Map is just a type alias, a shortcut of map[string]any.
type Map = map[string]any
