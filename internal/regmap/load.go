// internal/regmap/load.go
package regmap

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// entry mirrors one YAML register item. Pointer fields so absent and zero
// can be told apart when merging with the document defaults.
type entry struct {
	ID          *string           `yaml:"id"`
	Address     *int              `yaml:"address"`
	Count       *int              `yaml:"count"`
	Function    *string           `yaml:"function"`
	Func        *string           `yaml:"func"`
	Type        *string           `yaml:"type"`
	DType       *string           `yaml:"dtype"`
	ByteOrder   *string           `yaml:"byte_order"`
	Multiply    *float64          `yaml:"multiply"`
	Scale       *float64          `yaml:"scale"`
	Offset      *float64          `yaml:"offset"`
	Measurement *string           `yaml:"measurement"`
	Field       *string           `yaml:"field"`
	Name        *string           `yaml:"name"`
	Tags        map[string]string `yaml:"tags"`
}

type document struct {
	Defaults  entry   `yaml:"defaults"`
	Registers []entry `yaml:"registers"`
}

// Load reads, merges and validates a register map file.
func Load(path string, log *logrus.Logger) ([]Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("regmap: read %s: %w", path, err)
	}
	return Parse(data, log)
}

// Parse decodes a register map document. Each entry is merged field-by-field
// over the document defaults before the hard defaults apply.
func Parse(data []byte, log *logrus.Logger) ([]Spec, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("regmap: parse: %w", err)
	}

	specs := make([]Spec, 0, len(doc.Registers))
	for i, item := range doc.Registers {
		s, err := resolve(item, doc.Defaults)
		if err != nil {
			return nil, fmt.Errorf("regmap: register %d: %w", i, err)
		}
		specs = append(specs, s)
	}

	if err := Validate(specs); err != nil {
		return nil, err
	}
	warnDuplicates(specs, log)
	return specs, nil
}

func resolve(item, def entry) (Spec, error) {
	id := pickStr("", item.ID, def.ID)
	if id == "" {
		return Spec{}, errors.New("id is required")
	}

	addr := item.Address
	if addr == nil {
		addr = def.Address
	}
	if addr == nil {
		return Spec{}, fmt.Errorf("%q: address is required", id)
	}
	if *addr < 0 || *addr > 0xFFFF {
		return Spec{}, fmt.Errorf("%q: address %d out of range", id, *addr)
	}

	tags := item.Tags
	if tags == nil {
		tags = def.Tags
	}
	// copy so specs do not alias the parsed document
	tcopy := make(map[string]string, len(tags))
	for k, v := range tags {
		tcopy[k] = v
	}

	return Spec{
		ID:          id,
		Address:     uint16(*addr),
		Count:       pickInt(1, item.Count, def.Count),
		Function:    Function(strings.ToLower(pickStr(string(FunctionHolding), item.Function, item.Func, def.Function, def.Func))),
		DType:       DType(strings.ToLower(pickStr(string(Uint16), item.Type, item.DType, def.Type, def.DType))),
		ByteOrder:   ByteOrder(strings.ToUpper(pickStr(string(OrderAB), item.ByteOrder, def.ByteOrder))),
		Multiply:    pickFloat(1.0, item.Multiply, item.Scale, def.Multiply, def.Scale),
		Offset:      pickFloat(0.0, item.Offset, def.Offset),
		Measurement: pickStr("deye", item.Measurement, def.Measurement),
		Field:       pickStr(id, item.Field, item.Name, def.Field, def.Name),
		Tags:        tcopy,
	}, nil
}

// warnDuplicates flags (measurement, field) pairs defined more than once.
// The last definition wins at decode time; this is kept, not rejected.
func warnDuplicates(specs []Spec, log *logrus.Logger) {
	seen := make(map[string]string, len(specs))
	for _, s := range specs {
		key := s.Measurement + "\x00" + s.Field
		if prev, ok := seen[key]; ok {
			log.Warnf("regmap: %s/%s defined by both %q and %q; the last one wins", s.Measurement, s.Field, prev, s.ID)
		}
		seen[key] = s.ID
	}
}

func pickStr(fallback string, candidates ...*string) string {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return fallback
}

func pickInt(fallback int, candidates ...*int) int {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return fallback
}

func pickFloat(fallback float64, candidates ...*float64) float64 {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return fallback
}
