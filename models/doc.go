/*
Package models defines the request, response, and domain types shared by
handlers and the store.

The central type is Response: one participant's rating of one stimulus.
Responses are persisted as rows in per-participant CSV session files; the
canonical column set lives in the store package. Version is always one of
the canonical labels ("full", "left", "right") after normalization.

Summary and its component types carry the aggregation displayed on the
dashboard and served by /api/summary.
*/
package models
