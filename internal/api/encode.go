package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	contentTypeJSON    = "application/json"
	contentTypeMsgpack = "application/msgpack"
)

func wantsMsgpack(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		switch strings.ToLower(strings.TrimSpace(mediaType)) {
		case contentTypeMsgpack, "application/x-msgpack":
			return true
		}
	}
	return false
}

func encodeBody(r *http.Request, v any) (string, []byte, error) {
	if wantsMsgpack(r) {
		b, err := msgpack.Marshal(v)
		return contentTypeMsgpack, b, err
	}
	b, err := json.Marshal(v)
	return contentTypeJSON, b, err
}

func decodeBody(r *http.Request, v any) error {
	mediaType, _, _ := strings.Cut(r.Header.Get("Content-Type"), ";")
	switch strings.ToLower(strings.TrimSpace(mediaType)) {
	case contentTypeMsgpack, "application/x-msgpack":
		return msgpack.NewDecoder(r.Body).Decode(v)
	default:
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	}
}
