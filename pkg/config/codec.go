// Package config converts filter chains to and from persisted records.
package config

import (
	"fmt"

	p "github.com/wdm0006/purifier/pkg/purifier"
	"github.com/wdm0006/purifier/pkg/validate"
)

// Encode returns one record per stage in chain order.
func Encode(c *p.Chain) []p.Record {
	if c == nil {
		return []p.Record{}
	}
	return c.Describe()
}

// Decode builds a new chain from records, appending in order. It never
// returns a partially built chain: any unknown kind or out-of-range
// efficiency fails the whole decode.
func Decode(records []p.Record) (*p.Chain, error) {
	c := p.NewChain()
	for i, r := range records {
		s, err := validate.Record(r)
		if err != nil {
			return nil, fmt.Errorf("filter %d: %w", i, err)
		}
		if err := c.Append(s); err != nil {
			return nil, fmt.Errorf("filter %d: %w", i, err)
		}
	}
	return c, nil
}
