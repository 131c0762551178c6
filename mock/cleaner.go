package mock

import "github.com/rashidq/nezamdoc"

var _ nezamdoc.Cleaner = (*Cleaner)(nil)

// Cleaner is a mock implementation of nezamdoc.Cleaner.
type Cleaner struct {
	CleanFn func(fragment string) (string, error)
}

func (c *Cleaner) Clean(fragment string) (string, error) {
	return c.CleanFn(fragment)
}
