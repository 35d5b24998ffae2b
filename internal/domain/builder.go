package domain

import "context"

// buildLocationInfo constructs the normalized record for a search candidate,
// fetching place details as part of construction. A details soft failure
// leaves the coarse fields from the search candidate in place.
func (r *Resolver) buildLocationInfo(ctx context.Context, c SearchCandidate) LocationInfo {
	info := LocationInfo{
		PlaceID:          c.PlaceID,
		Name:             c.Name,
		FormattedAddress: c.FormattedAddress,
		LatLng:           c.Location,
		Types:            c.Types,
	}
	if c.PlaceID == "" {
		return info
	}

	details, err := r.places.PlaceDetails(ctx, c.PlaceID)
	if err != nil {
		r.logger.Warn("place details lookup failed", "place_id", c.PlaceID, "error", err)
		return info
	}
	if details == nil {
		return info
	}

	applyAddressComponents(&info, details.AddressComponents)
	if details.FormattedAddress != "" {
		info.FormattedAddress = details.FormattedAddress
	}
	info.PlaceDetails = details.Raw
	return info
}

// applyAddressComponents decomposes the provider's component list into the
// structured address fields.
func applyAddressComponents(info *LocationInfo, components []AddressComponent) {
	hasCity := false
	for _, c := range components {
		switch {
		case componentHasType(c, "street_number"):
			info.StreetNumber = c.LongName
		case componentHasType(c, "route"):
			info.Street = c.LongName
		case componentHasType(c, "locality"):
			info.City = c.LongName
			hasCity = true
		case componentHasType(c, "administrative_area_level_1"):
			info.StateProv = c.LongName
			info.StateProvShort = c.ShortName
		case componentHasType(c, "country"):
			info.Country = c.LongName
			info.CountryShort = c.ShortName
		case componentHasType(c, "postal_code"):
			info.PostalCode = c.LongName
		}
	}

	// Some regions have no locality component. Downstream records expect a
	// city whenever a state is known, so degrade to the state name.
	if !hasCity && info.StateProv != "" {
		info.City = info.StateProv
	}
}

func componentHasType(c AddressComponent, t string) bool {
	for _, ct := range c.Types {
		if ct == t {
			return true
		}
	}
	return false
}
