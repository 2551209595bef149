// SPDX-License-Identifier: MIT

package navapi

import "github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/geometry"

type RouteRequest struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Accessible bool   `json:"accessible,omitempty"`
}

// AssertRouteRequestRequired checks if the required fields are not zero-ed
func AssertRouteRequestRequired(obj RouteRequest) error {
	elements := map[string]interface{}{
		"from": obj.From,
		"to":   obj.To,
	}
	for name, el := range elements {
		if isZero := IsZeroValue(el); isZero {
			return &RequiredError{Field: name}
		}
	}
	return nil
}

// LocationRouteRequest routes from the stored user location
type LocationRouteRequest struct {
	To         string `json:"to"`
	Accessible bool   `json:"accessible,omitempty"`
}

func AssertLocationRouteRequestRequired(obj LocationRouteRequest) error {
	if IsZeroValue(obj.To) {
		return &RequiredError{Field: "to"}
	}
	return nil
}

// OutdoorRouteRequest routes from the entrance closest to a GPS position
type OutdoorRouteRequest struct {
	Position geometry.LatLng `json:"position"`
	To       string          `json:"to"`
}

func AssertOutdoorRouteRequestRequired(obj OutdoorRouteRequest) error {
	if IsZeroValue(obj.To) {
		return &RequiredError{Field: "to"}
	}
	if IsZeroValue(obj.Position) {
		return &RequiredError{Field: "position"}
	}
	if !obj.Position.Valid() {
		return &ParsingError{Err: errInvalidPosition(obj.Position)}
	}
	return nil
}
