package physics

import (
	"fmt"
	"sort"

	"orbitsearch/internal/dynamo"
)

var builders = map[string]func() dynamo.System{
	"vanderpol": func() dynamo.System { return NewVanDerPol() },
	"lorenz":    func() dynamo.System { return NewLorenz() },
	"rossler":   func() dynamo.System { return NewRossler() },
	"duffing":   func() dynamo.System { return NewDuffing() },
	"rotation":  func() dynamo.System { return NewRotation() },
}

// New builds a registered system by name.
func New(name string) (dynamo.System, error) {
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("physics: unknown system %q (available: %v)", name, Names())
	}
	return b(), nil
}

func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
