// Package either provides a two-variant result container.
//
// A Left holds an expected failure and a Right holds a successful value. Use
// cases return an Either for failures the caller is supposed to handle (bad
// input, a mail transport that refused a message) and keep the plain error
// return for faults nobody expects. Callers must check IsLeft or IsRight before
// reading the payload.
package either
