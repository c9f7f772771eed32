package topic

import (
	"fmt"
	"sort"
	"strings"
)

// Topic is a fixed search term the analysis pipeline produced artifacts for
type Topic struct {
	Label string
	// Description is optional markdown shown under the heading
	Description string
}

// Normalize turns a label into the filename key used on the artifact host.
// Only spaces are replaced; umlauts, hyphens and punctuation pass through raw.
func Normalize(label string) string {
	return strings.ReplaceAll(label, " ", "_")
}

// Key returns the normalized, filename-safe form of the label
func (t Topic) Key() string {
	return Normalize(t.Label)
}

func (t Topic) String() string {
	return t.Label
}

// Catalogue is an immutable, ordered set of topics
type Catalogue struct {
	topics  []Topic
	byLabel map[string]int
	byKey   map[string]int
}

// NewCatalogue validates topics and freezes their order.
// Labels must be non-empty and unique, and no two labels may share a key.
func NewCatalogue(topics []Topic) (*Catalogue, error) {
	if len(topics) == 0 {
		return nil, fmt.Errorf("topic catalogue is empty")
	}

	c := &Catalogue{
		topics:  make([]Topic, len(topics)),
		byLabel: make(map[string]int, len(topics)),
		byKey:   make(map[string]int, len(topics)),
	}
	copy(c.topics, topics)

	for i, t := range c.topics {
		if strings.TrimSpace(t.Label) == "" {
			return nil, fmt.Errorf("topic %d has an empty label", i)
		}
		if j, ok := c.byLabel[t.Label]; ok {
			return nil, fmt.Errorf("duplicate topic %q at positions %d and %d", t.Label, j, i)
		}
		if j, ok := c.byKey[t.Key()]; ok {
			return nil, fmt.Errorf("topics %q and %q share the key %q", c.topics[j].Label, t.Label, t.Key())
		}
		c.byLabel[t.Label] = i
		c.byKey[t.Key()] = i
	}
	return c, nil
}

// MustCatalogue is NewCatalogue for package-level literals
func MustCatalogue(topics []Topic) *Catalogue {
	c, err := NewCatalogue(topics)
	if err != nil {
		panic(err)
	}
	return c
}

// All returns the topics in catalogue order. The slice is a copy.
func (c *Catalogue) All() []Topic {
	out := make([]Topic, len(c.topics))
	copy(out, c.topics)
	return out
}

// Labels returns the topic labels in catalogue order
func (c *Catalogue) Labels() []string {
	labels := make([]string, len(c.topics))
	for i, t := range c.topics {
		labels[i] = t.Label
	}
	return labels
}

// Sorted returns the topics ordered alphabetically by label
func (c *Catalogue) Sorted() []Topic {
	out := c.All()
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Label) < strings.ToLower(out[j].Label)
	})
	return out
}

// Default is the topic preselected in the dropdown
func (c *Catalogue) Default() Topic {
	return c.topics[0]
}

// Len returns the number of topics
func (c *Catalogue) Len() int {
	return len(c.topics)
}

// Lookup finds a topic by its exact label
func (c *Catalogue) Lookup(label string) (Topic, bool) {
	i, ok := c.byLabel[label]
	if !ok {
		return Topic{}, false
	}
	return c.topics[i], true
}

// LookupKey finds a topic by its normalized key
func (c *Catalogue) LookupKey(key string) (Topic, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return Topic{}, false
	}
	return c.topics[i], true
}
