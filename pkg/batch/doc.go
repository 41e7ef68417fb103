// Package batch reserves many names with the RSVP contract in one run and
// reports the outcome of every entry.
//
// Input is a CSV file of "name,owner" lines. Entries run concurrently with a
// bounded number of groups in flight. An optional Journal records confirmed
// reservations so that a rerun of the same file skips them.
package batch
