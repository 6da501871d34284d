package catalog

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/eddiewu/docixselect/pkg/geo"
)

// geo2DDefaults mirrors the original's fieldWithDefault(infoObj, "bits", 26)
// and its min/max counterparts: a 2d index declared without explicit
// precision gets 26 bits of resolution over the full [-180, 180) range.
const (
	defaultBits uint    = 26
	defaultMin  float64 = -180
	defaultMax  float64 = 180
)

// rawGeo2DInfo is the shape mapstructure decodes IndexEntry.InfoObj into
// before defaults are applied. Pointer fields distinguish "absent" from
// "explicitly zero".
type rawGeo2DInfo struct {
	Bits *uint    `mapstructure:"bits"`
	Min  *float64 `mapstructure:"min"`
	Max  *float64 `mapstructure:"max"`
}

// DecodeGeo2DParams decodes a 2d index's InfoObj into geo.HashConverterParams,
// applying the original's defaults for any field the InfoObj omits. It is a
// no-op-safe call on an index with a nil InfoObj: every field defaults.
func (e IndexEntry) DecodeGeo2DParams() (geo.HashConverterParams, error) {
	params := geo.HashConverterParams{Bits: defaultBits, Min: defaultMin, Max: defaultMax}
	if e.InfoObj == nil {
		return params, nil
	}

	var raw rawGeo2DInfo
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &raw,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return geo.HashConverterParams{}, fmt.Errorf("catalog: building InfoObj decoder: %w", err)
	}
	if err := decoder.Decode(e.InfoObj); err != nil {
		return geo.HashConverterParams{}, fmt.Errorf("catalog: decoding 2d index InfoObj: %w", err)
	}

	if raw.Bits != nil {
		params.Bits = *raw.Bits
	}
	if raw.Min != nil {
		params.Min = *raw.Min
	}
	if raw.Max != nil {
		params.Max = *raw.Max
	}
	return params, nil
}
