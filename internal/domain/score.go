package domain

import "math"

const (
	// fullCreditThreshold grants a field full credit once its similarity is
	// clearly a match, so minor metric noise ("St" vs "Street") cannot drag
	// an otherwise correct candidate down.
	fullCreditThreshold = 0.5

	// nameWeight weights the venue/name field against the single-weighted
	// address fields.
	nameWeight = 3.0

	// scoreDenominator normalizes the accumulated credit. The weights sum
	// past it on a full match, so min(1, acc/denominator) pins perfect
	// matches at exactly 1 while missing fields still depress the score.
	scoreDenominator = 5.0

	// nonPOIPenalty halves team scores for candidates the provider did not
	// tag as a point of interest, e.g. bare administrative areas.
	nonPOIPenalty = 0.5

	poiType = "point_of_interest"
)

// ScoreEventCandidate scores a candidate place against an event's structured
// fields. 1.0 is a perfect match. Fields absent from the event contribute
// nothing but stay in the denominator; equality is never required because
// the stored data itself has errors.
func ScoreEventCandidate(q LocationQuery, info LocationInfo) float64 {
	var acc float64
	acc += fieldCredit(q.Country, bestFormSimilarity(q.Country, info.Country, info.CountryShort))
	acc += fieldCredit(q.StateProv, bestFormSimilarity(q.StateProv, info.StateProv, info.StateProvShort))
	acc += fieldCredit(q.City, Similarity(q.City, info.City))
	acc += fieldCredit(q.PostalCode, Similarity(q.PostalCode, info.PostalCode))
	acc += nameWeight * fieldCredit(q.Venue, Similarity(q.Venue, info.Name))
	return math.Min(1, acc/scoreDenominator)
}

// ScoreTeamCandidate scores a candidate place against a team's structured
// fields and the query that produced it. The same weighted scheme as events,
// with the query string standing in for the venue name, and a halved total
// for candidates that are not a point of interest.
func ScoreTeamCandidate(query string, q LocationQuery, info LocationInfo) float64 {
	var acc float64
	acc += fieldCredit(q.Country, bestFormSimilarity(q.Country, info.Country, info.CountryShort))
	acc += fieldCredit(q.StateProv, bestFormSimilarity(q.StateProv, info.StateProv, info.StateProvShort))
	acc += fieldCredit(q.City, Similarity(q.City, info.City))
	acc += fieldCredit(q.PostalCode, Similarity(q.PostalCode, info.PostalCode))
	acc += nameWeight * fieldCredit(query, Similarity(query, info.Name))

	score := math.Min(1, acc/scoreDenominator)
	if !info.HasType(poiType) {
		score *= nonPOIPenalty
	}
	return score
}

// fieldCredit returns the clamped contribution for one field: zero when the
// entity does not carry the field, full credit above the threshold, raw
// similarity below it.
func fieldCredit(field string, sim float64) float64 {
	if field == "" {
		return 0
	}
	if sim > fullCreditThreshold {
		return 1
	}
	return sim
}

// bestFormSimilarity compares a field against both the long and short form
// of a component ("United States" and "US") and keeps the better score.
func bestFormSimilarity(field, long, short string) float64 {
	return math.Max(Similarity(field, long), Similarity(field, short))
}
