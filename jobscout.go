// Package jobscout infers reusable parser profiles for job-listing pages.
// Given a single HTML snapshot of a careers page it locates the repeating
// job entries, binds title/url/company/location fields, and validates the
// result by running the profile against the same snapshot.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package jobscout
