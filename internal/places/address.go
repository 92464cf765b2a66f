// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package places

import (
	"slices"
	"strings"

	"github.com/wneessen/placeutil/internal/vartype"
)

const (
	FieldStreetNumber      = "street_number"
	FieldRoute             = "route"
	FieldPostalCode        = "postal_code"
	FieldCountry           = "country"
	FieldAdminAreaLevel1   = "administrative_area_level_1"
	FieldAdminAreaLevel2   = "administrative_area_level_2"
	FieldLocality          = "locality"
	FieldSublocalityLevel1 = "sublocality_level_1"
	FieldSublocalityLevel2 = "sublocality_level_2"
	FieldOpeningHours      = "opening_hours"
	FieldPriceLevel        = "price_level"

	address1Separator = ", "
)

// AddressFields are the component tags picked up by NormalizeAddress, in order.
var AddressFields = []string{
	FieldStreetNumber, FieldRoute, FieldPostalCode, FieldCountry, FieldAdminAreaLevel1,
	FieldAdminAreaLevel2, FieldLocality, FieldSublocalityLevel1, FieldSublocalityLevel2,
	FieldOpeningHours, FieldPriceLevel,
}

// NormalizedAddress is the flattened address of a place. Fields whose source component is
// missing are unset, which is different from a component with an empty name.
type NormalizedAddress struct {
	PlaceID     string            `json:"placeid"`
	FullAddress string            `json:"full_address"`
	Address1    string            `json:"address1"`
	State       vartype.VarString `json:"state"`
	City        vartype.VarString `json:"city"`
	Locality    vartype.VarString `json:"locality"`
	Zipcode     vartype.VarString `json:"zipcode"`
	Country     vartype.VarString `json:"country"`
}

// AddressFieldValues folds the components into a tag → long name map for all tags listed in
// AddressFields. Components are applied in order and a later component overwrites the value
// an earlier one set for the same tag.
func AddressFieldValues(components []AddressComponent) map[string]string {
	values := make(map[string]string, len(AddressFields))
	for _, comp := range components {
		for _, tag := range comp.Types {
			if slices.Contains(AddressFields, tag) {
				values[tag] = comp.LongName
			}
		}
	}
	return values
}

// NormalizeAddress flattens the address components of place. A nil place yields nil.
//
// Address1 joins state, route and sublocality_level_2 with ", " and keeps empty segments,
// so a place with only a route becomes ", Route, ".
func NormalizeAddress(place *Place) *NormalizedAddress {
	if place == nil {
		return nil
	}
	values := AddressFieldValues(place.AddressComponents)

	return &NormalizedAddress{
		PlaceID:     place.PlaceID,
		FullAddress: place.FormattedAddress,
		Address1: strings.Join([]string{
			values[FieldAdminAreaLevel1], values[FieldRoute], values[FieldSublocalityLevel2],
		}, address1Separator),
		State:    lookup(values, FieldAdminAreaLevel1),
		City:     lookup(values, FieldLocality),
		Locality: lookup(values, FieldSublocalityLevel1),
		Zipcode:  lookup(values, FieldPostalCode),
		Country:  lookup(values, FieldCountry),
	}
}

func lookup(values map[string]string, tag string) vartype.VarString {
	var v vartype.VarString
	if val, ok := values[tag]; ok {
		v.Set(val)
	}
	return v
}
