// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists survey response records as per-participant CSV
session files.

# Layout

One file per participant session under <dataDir>/responses:

	responses/session_<participant_id>.csv

# Canonical Schema

Every file written by this package uses one column set:

	participant_id,face_id,version,trust_rating,emotion_rating,masculinity,femininity,timestamp

Version is one of "full", "left", "right". The old generator scripts
emitted divergent headers ("Participant ID", "Trust", ...) and version
labels ("Full Face", "Left Half", "Right Half"); those files are absorbed
on read through header aliasing and label normalization, and are never
rewritten.

# Error Tolerance

Malformed rows are skipped and counted, not fatal: a session with one bad
row still renders on the dashboard. Missing optional rating columns parse
as zero values.

# Aggregation

Summary() computes the dashboard aggregation in one pass: response counts
per version, mean trust per face and version, and the participant count.
*/
package store
