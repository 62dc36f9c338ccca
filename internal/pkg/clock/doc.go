// Package clock lets storage adapters stamp records with a replaceable clock.
package clock
