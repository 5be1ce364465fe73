// Package roster provides the record types and joining logic for ACB player data.
//
// The roster package defines the three record shapes that flow through the
// pipeline (PlayerRecord from the sports API, SupplementalRecord from the
// encyclopedia lookup, UnifiedRecord as the merged output) and the pure
// functions that combine them: NormalizeName for building match keys, Join
// for merging the two sources, and AttachSchedule for adding per-team game
// lists to the joined records.
package roster
