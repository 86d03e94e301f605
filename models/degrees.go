package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Degrees is an optional latitude or longitude.
//
// Older documents store coordinates as text, so decoding accepts strings as
// well as BSON numbers. Values that are missing, unparseable or not finite
// decode as absent instead of failing the whole document. Encoding writes the
// decimal text form so existing readers of the collection keep working.
type Degrees struct {
	Value float64
	Valid bool
}

func NewDegrees(v float64) Degrees {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Degrees{}
	}
	return Degrees{Value: v, Valid: true}
}

func ParseDegrees(s string) Degrees {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Degrees{}
	}
	return NewDegrees(v)
}

// IsZero lets bson omitempty drop absent coordinates.
func (d Degrees) IsZero() bool {
	return !d.Valid
}

func (d Degrees) String() string {
	if !d.Valid {
		return ""
	}
	return strconv.FormatFloat(d.Value, 'f', -1, 64)
}

func (d Degrees) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !d.Valid {
		return bson.TypeNull, nil, nil
	}
	return bson.MarshalValue(d.String())
}

func (d *Degrees) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeString:
		*d = ParseDegrees(raw.StringValue())
	case bson.TypeDouble:
		*d = NewDegrees(raw.Double())
	case bson.TypeInt32:
		*d = NewDegrees(float64(raw.Int32()))
	case bson.TypeInt64:
		*d = NewDegrees(float64(raw.Int64()))
	case bson.TypeDecimal128:
		*d = ParseDegrees(raw.Decimal128().String())
	default:
		*d = Degrees{}
	}
	return nil
}

func (d Degrees) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Value)
}

// UnmarshalJSON accepts a number, a numeric string or null.
func (d *Degrees) UnmarshalJSON(b []byte) error {
	if strings.TrimSpace(string(b)) == "null" {
		*d = Degrees{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err == nil {
		*d = NewDegrees(v)
		return nil
	}
	var text string
	if err := json.Unmarshal(b, &text); err != nil {
		return fmt.Errorf("degrees: %w", err)
	}
	*d = ParseDegrees(text)
	return nil
}
