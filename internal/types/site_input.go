// Package types provides type definitions for structured data used throughout the rainwater advisor.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Coordinates is a WGS84 latitude/longitude pair
type Coordinates struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// SiteInput describes the property being assessed.
type SiteInput struct {
	RoofAreaM2        float64      `json:"roof_area_m2" validate:"gt=0"`
	Location          string       `json:"location"`
	Coordinates       *Coordinates `json:"coordinates,omitempty"`
	AnnualRainfallMm  float64      `json:"annual_rainfall_mm" validate:"gte=0"`
	GroundwaterDepthM float64      `json:"groundwater_depth_m" validate:"gt=0"`
	SoilType          string       `json:"soil_type"`
	RoofType          string       `json:"roof_type"`
	AvailableSpaceM2  float64      `json:"available_space_m2" validate:"gte=0"`
	NumDwellers       int          `json:"num_dwellers" validate:"min=1"`

	// WaterDemandLitersPerYear is accepted for compatibility only. Demand is
	// always derived from NumDwellers.
	WaterDemandLitersPerYear float64 `json:"water_demand_liters_per_year,omitempty" validate:"gte=0"`
	// Budget is carried through unchanged; no scorer reads it.
	Budget float64 `json:"budget,omitempty" validate:"gte=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names so errors line up with request bodies.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate rejects inputs the scoring formulas cannot handle meaningfully
// (non-positive roof area, zero dwellers, NaN or infinite numbers, ...).
// It returns an *InvalidInputError listing every offending field.
func (in *SiteInput) Validate() error {
	invalid := &InvalidInputError{}

	numbers := []struct {
		field string
		value float64
	}{
		{"roof_area_m2", in.RoofAreaM2},
		{"annual_rainfall_mm", in.AnnualRainfallMm},
		{"groundwater_depth_m", in.GroundwaterDepthM},
		{"available_space_m2", in.AvailableSpaceM2},
		{"water_demand_liters_per_year", in.WaterDemandLitersPerYear},
		{"budget", in.Budget},
	}
	if in.Coordinates != nil {
		numbers = append(numbers,
			struct {
				field string
				value float64
			}{"coordinates.lat", in.Coordinates.Lat},
			struct {
				field string
				value float64
			}{"coordinates.lng", in.Coordinates.Lng},
		)
	}
	nonFinite := make(map[string]bool)
	for _, n := range numbers {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			invalid.add(n.field, "must be a finite number")
			nonFinite[n.field] = true
		}
	}

	if err := validate.Struct(in); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			invalid.add("(root)", err.Error())
			return invalid
		}
		for _, fe := range validationErrors {
			field := fieldPath(fe.Namespace())
			if nonFinite[field] {
				continue
			}
			invalid.add(field, describeTag(fe))
		}
	}

	if len(invalid.Fields) > 0 {
		return invalid
	}
	return nil
}

// HasCoordinates reports whether usable coordinates were supplied.
func (in *SiteInput) HasCoordinates() bool {
	return in.Coordinates != nil
}

// fieldPath strips the root struct name from a validator namespace
// ("SiteInput.coordinates.lat" -> "coordinates.lat").
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "required":
		return "is required"
	default:
		return "failed " + fe.Tag() + " check"
	}
}
