package mock

import "github.com/mstolarski/siteqa"

var _ siteqa.Cleaner = (*Cleaner)(nil)

// Cleaner is a mock implementation of siteqa.Cleaner.
type Cleaner struct {
	CleanFn func(html string) (string, error)
}

func (c *Cleaner) Clean(html string) (string, error) {
	return c.CleanFn(html)
}

var _ siteqa.Converter = (*Converter)(nil)

// Converter is a mock implementation of siteqa.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
