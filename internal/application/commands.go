package application

type RunDebateCommand struct {
	Topic         string
	MaxIterations int
	// Embodiment overrides Config.EmbodimentEnabled when set.
	Embodiment       *bool
	AdjustmentSource AdjustmentSource
	Observer         Observer
}

func (c RunDebateCommand) apply(cfg Config) Config {
	if c.MaxIterations > 0 {
		cfg.MaxIterations = c.MaxIterations
	}
	if c.Embodiment != nil {
		cfg.EmbodimentEnabled = *c.Embodiment
	}
	if c.AdjustmentSource != "" {
		cfg.AdjustmentSource = c.AdjustmentSource
	}
	return cfg
}
