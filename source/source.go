package source

import goPermit "github.com/MrEthical07/goPermit"

// Source produces an initial resolver configuration.
type Source interface {
	Load() (goPermit.Config, error)
}

// Static returns a Source that always yields a copy of cfg.
func Static(cfg goPermit.Config) Source {
	return staticSource{cfg: cfg.Clone()}
}

type staticSource struct {
	cfg goPermit.Config
}

func (s staticSource) Load() (goPermit.Config, error) {
	return s.cfg.Clone(), nil
}
