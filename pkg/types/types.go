// Package types contains shared data structures used across the application.
package types

// Pattern is a named pattern definition as supplied by the user.
type Pattern struct {
	Name        string `yaml:"name"`
	Expr        string `yaml:"pattern"`
	Description string `yaml:"description,omitempty"`
	Disabled    bool   `yaml:"disabled,omitempty"`
}
