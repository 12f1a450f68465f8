package yahoo

import (
	"bytes"

	"github.com/tidwall/gjson"
)

// Decode validates body as JSON and returns its parsed tree.
func Decode(body []byte) (gjson.Result, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return gjson.Result{}, ErrEmptyBody
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, ErrInvalidJSON
	}
	return gjson.ParseBytes(body), nil
}
