package domain

import "strings"

// maxFragmentDelimiters rejects name fragments that are still delimiter
// heavy after splitting; such fragments are sponsor lists, not a clean
// school or sponsor name worth searching for.
const maxFragmentDelimiters = 3

// EventQueries derives the ordered candidate search queries for an event.
//
// The venue name, when present, is always the first and most trustworthy
// query. The venue address block contributes prefix slices (first line,
// first two lines) and then suffix slices (line i through the end, for every
// i): the venue occupies at most the first two lines of the block, so the
// suffixes isolate the street address while the prefixes isolate the venue.
// Duplicates are skipped; missing fields just shorten the list.
func EventQueries(q LocationQuery) []string {
	var queries []string
	seen := make(map[string]bool)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		queries = append(queries, s)
	}

	add(q.Venue)

	if q.VenueAddress != "" {
		lines := addressLines(q.VenueAddress)
		for n := 1; n <= 2 && n <= len(lines); n++ {
			add(strings.Join(lines[:n], " "))
		}
		for i := range lines {
			add(strings.Join(lines[i:], " "))
		}
	}

	return queries
}

// addressLines splits a multi-line address block into trimmed, non-empty
// lines.
func addressLines(address string) []string {
	raw := strings.Split(address, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// TeamNameFragments extracts probable school or title-sponsor names from a
// team's display name by splitting on '&' and on '/' separately and taking
// the last and first segment of each split. The last segment usually names
// the school, so it comes first. Fragments still containing three or more
// delimiters are discarded.
func TeamNameFragments(name string) []string {
	if strings.TrimSpace(name) == "" {
		return nil
	}

	ampSplit := strings.Split(name, "&")
	slashSplit := strings.Split(name, "/")

	var fragments []string
	seen := make(map[string]bool)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			return
		}
		if strings.Count(s, "&") >= maxFragmentDelimiters || strings.Count(s, "/") >= maxFragmentDelimiters {
			return
		}
		seen[s] = true
		fragments = append(fragments, s)
	}

	add(ampSplit[len(ampSplit)-1])
	add(slashSplit[len(slashSplit)-1])
	add(ampSplit[0])
	add(slashSplit[0])

	return fragments
}

// TeamQueries derives the ordered candidate search queries for a team: each
// name fragment alone, then the fragment combined with the team's raw
// location string.
func TeamQueries(q LocationQuery) []string {
	var queries []string
	seen := make(map[string]bool)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		queries = append(queries, s)
	}

	for _, fragment := range TeamNameFragments(q.Name) {
		add(fragment)
		if q.Location != "" {
			add(fragment + " " + q.Location)
		}
	}

	return queries
}
