// Package types defines the value model shared by satchel's packages: the
// Value tagged union, Mapping, the process Config, and the standard error
// types returned by the model and configuration layers.
package types
