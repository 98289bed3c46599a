package memdb

const (
	// DefaultMemSize the default number of records preallocated by the store.
	DefaultMemSize = 100
)

type config struct {
	memSize int
}

type Option func(*config)

// WithMemSize allows us to specify a custom initial capacity for the record log.
func WithMemSize(memSize int) Option {
	return func(c *config) {
		if memSize >= 0 {
			c.memSize = memSize
		}
	}
}
