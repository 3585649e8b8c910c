package collections

import (
	"fmt"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/go-playground/validator/v10"
)

// Envelope format.
const (
	EnvelopeType    = "curriculum-standards-collection"
	EnvelopeVersion = 1
)

var validate = validator.New()

// Envelope is the export format of one collection.
type Envelope struct {
	Type       string     `json:"type" validate:"required,eq=curriculum-standards-collection"`
	Version    int        `json:"version" validate:"gte=1"`
	ExportedAt string     `json:"exportedAt"`
	Collection Collection `json:"collection"`
}

// NewEnvelope wraps a collection for export. The id is dropped.
func NewEnvelope(c Collection, now time.Time) Envelope {
	c.ID = ""
	if c.StandardCodes == nil {
		c.StandardCodes = []string{}
	}
	return Envelope{
		Type:       EnvelopeType,
		Version:    EnvelopeVersion,
		ExportedAt: now.UTC().Format(time.RFC3339Nano),
		Collection: c,
	}
}

// Validate checks type, version and collection name.
func (e Envelope) Validate() error {
	return validate.Struct(e)
}

// ParseEnvelope decodes and validates an exported collection.
func ParseEnvelope(data []byte) (Envelope, error) {
	var res Envelope
	enc := gnfmt.GNjson{}
	if err := enc.Decode(data, &res); err != nil {
		return res, fmt.Errorf("cannot decode collection: %w", err)
	}
	if err := res.Validate(); err != nil {
		return res, fmt.Errorf("invalid collection format: %w", err)
	}
	return res, nil
}

// Encode returns indented JSON of the envelope.
func (e Envelope) Encode() ([]byte, error) {
	enc := gnfmt.GNjson{Pretty: true}
	return enc.Encode(e)
}
