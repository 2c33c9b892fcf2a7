package pageheap

const (
	defaultFanout     = 4
	defaultPageChunks = 1
)

// Option is a functional option for configuring a heap's geometry.
type Option func(*config)

type config struct {
	fanout     int
	pageChunks int
}

func defaultConfig() *config {
	return &config{
		fanout:     defaultFanout,
		pageChunks: defaultPageChunks,
	}
}

// WithFanout sets the number of children per node. Must be at least 2.
// A fanout of 4 (the default) is a strong general-purpose baseline.
func WithFanout(f int) Option {
	return func(c *config) {
		c.fanout = f
	}
}

// WithPageChunks sets the number of fanout-sized chunks per page. Must be at
// least 1; 1 (the default) selects the classic non-paged layout. Fanout 2
// with 512 page chunks approximates a binary heap laid out in cache pages.
func WithPageChunks(p int) Option {
	return func(c *config) {
		c.pageChunks = p
	}
}
