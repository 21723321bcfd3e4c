package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// JSONPart is the multipart field carrying the record itself.
const JSONPart = "json"

const maxUploadMemory = 32 << 20

// ErrInvalidBody wraps any body that cannot be read as an import record.
var ErrInvalidBody = errors.New("invalid request body")

// DecodeRequest reads an import record from either a JSON body or a
// multipart body whose "json" part holds the record and whose remaining
// parts are attachments.
func DecodeRequest(r *http.Request) (Payload, map[string]*Upload, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		payload, err := DecodePayload(r.Body)
		return payload, nil, err
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	form := r.MultipartForm

	var raw []byte
	if values := form.Value[JSONPart]; len(values) > 0 {
		raw = []byte(values[0])
	} else if headers := form.File[JSONPart]; len(headers) > 0 {
		f, err := headers[0].Open()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		raw, err = io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
	}

	payload, err := DecodePayload(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, err
	}

	files := map[string]*Upload{}
	for part, headers := range form.File {
		if part == JSONPart || len(headers) == 0 {
			continue
		}
		h := headers[0]
		f, err := h.Open()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		files[part] = &Upload{
			Filename:    h.Filename,
			ContentType: h.Header.Get("Content-Type"),
			Data:        data,
		}
	}
	return payload, files, nil
}

// DecodePayload reads one JSON object. Numbers are kept as json.Number so
// identifiers survive intact. An empty body is an empty payload.
func DecodePayload(r io.Reader) (Payload, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return Payload{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var payload Payload
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if payload == nil {
		return Payload{}, nil
	}
	return payload, nil
}
