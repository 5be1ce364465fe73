// Package dashboard serves the joined player records over a read-only JSON
// API.
//
// The server reads the unified stage's latest file on each request, so a
// pipeline run that overwrites the file is picked up without a restart.
// Records with missing supplemental fields are served as-is; absence is
// data, not an error. There are no write endpoints.
package dashboard
