package artifact

import (
	"strings"

	"maridash/domain/topic"
)

// Resolver derives artifact locations from a topic and the host's naming
// convention: {base}/{category}/{key}_{category}.{ext}
type Resolver struct {
	imageBase string
	dataBase  string
}

// NewResolver creates a resolver for the given image and data roots
func NewResolver(imageBase, dataBase string) *Resolver {
	return &Resolver{
		imageBase: strings.TrimRight(imageBase, "/"),
		dataBase:  strings.TrimRight(dataBase, "/"),
	}
}

// Locator builds the URL of one artifact. The key is not URL-escaped.
func (r *Resolver) Locator(c Category, t topic.Topic) string {
	base := r.imageBase
	if c.Kind == KindTable {
		base = r.dataBase
	}
	return base + "/" + c.Name + "/" + t.Key() + "_" + c.Name + "." + c.Kind.Extension()
}

// Resolve returns a reference for every category, in layout order
func (r *Resolver) Resolve(t topic.Topic) []Reference {
	refs := make([]Reference, len(Layout))
	for i, c := range Layout {
		refs[i] = Reference{Category: c, Topic: t, URL: r.Locator(c, t)}
	}
	return refs
}
