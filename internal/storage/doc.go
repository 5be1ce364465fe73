// Package storage provides JSON-based persistence for pipeline stage files.
//
// Each pipeline stage (players, supplements, schedule, unified) is written
// as a timestamped file (stage_YYYYMMDD_HHMMSS.json) alongside a
// stage_latest.json copy that downstream stages and the dashboard read.
// Files are overwritten wholesale on every run; there is no incremental
// update or append log.
package storage
