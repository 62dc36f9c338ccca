// Package validator checks struct tags on request payloads and wiring
// structs. Field names in reported errors follow the json tag.
package validator
