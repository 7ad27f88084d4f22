// Package event provides the event descriptor and the name/date
// normalization helpers shared by the discovery and extraction stages.
//
// Events are identified by the numeric id embedded in their fightodds.io
// URL. Dates are normalized to ISO calendar dates (YYYY-MM-DD); a bare
// month/day with no year is assigned the current year unless it has already
// passed by more than a week, in which case it rolls to next year.
package event
