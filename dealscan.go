// Package dealscan extracts structured listing data from marketplace web
// pages and runs it through a multi-stage analysis pipeline (product
// identification, live price lookups, final verdict synthesis) to produce
// a purchase recommendation.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, gemini/, sqlite/).
package dealscan
