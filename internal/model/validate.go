package model

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var resumeSchema []byte

// ErrInvalidPayload is returned when a payload does not match resume.schema.json.
var ErrInvalidPayload = errors.New("schema validation failed")

var schemaLoader = gojsonschema.NewBytesLoader(resumeSchema)

// Validate checks a transport resume against the embedded schema before it
// is handed to the generation service.
func Validate(r Resume) error {
	return validate(gojsonschema.NewGoLoader(r))
}

// ValidateMap validates a generic map against the embedded schema.
func ValidateMap(m map[string]interface{}) error {
	return validate(gojsonschema.NewGoLoader(m))
}

func validate(doc gojsonschema.JSONLoader) error {
	res, err := gojsonschema.Validate(schemaLoader, doc)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidPayload, strings.Join(msgs, "; "))
}
