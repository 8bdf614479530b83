package domain

import "strings"

// LaunchKind tells FitNesse whether a page is run as a suite or a single test
type LaunchKind string

const (
	KindSuite LaunchKind = "suite"
	KindTest  LaunchKind = "test"
)

// Launch references a wiki page to execute
type Launch struct {
	Kind     LaunchKind `json:"kind"`
	PageName string     `json:"page_name"` // Dotted page name, e.g. Some.Page.Name
}

// NewSuite creates a suite launch
func NewSuite(pageName string) Launch {
	return Launch{Kind: KindSuite, PageName: pageName}
}

// NewTest creates a single test launch
func NewTest(pageName string) Launch {
	return Launch{Kind: KindTest, PageName: pageName}
}

// LinkName returns the top-level page segment, used as the symlink name
func (l Launch) LinkName() string {
	name, _, _ := strings.Cut(l.PageName, ".")
	return name
}
