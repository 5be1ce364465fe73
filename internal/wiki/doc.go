// Package wiki implements the supplemental attribute resolver against
// Wikipedia.
//
// For each player the resolver runs an opensearch query, picks the first
// result whose title matches the player's name, and scrapes the article
// for hometown, high school, and college. Extraction works off the infobox
// rows with a first-paragraph fallback for the birthplace. Lookups that
// find a page but not every attribute return a partial record; pages that
// cannot be matched confidently return a miss rather than a guess.
package wiki
