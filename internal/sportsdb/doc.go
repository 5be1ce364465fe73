// Package sportsdb implements the source record fetcher against TheSportsDB.
//
// The client walks the free v1 JSON API: league team search (with a
// known-team fallback when the league lookup comes back empty), per-team
// player lookups, and the season schedule. Raw API envelopes are converted
// into roster records, and every emitted record is guaranteed to carry a
// non-empty name. Transient failures are retried with exponential backoff;
// a short delay between requests keeps the free tier happy.
package sportsdb
