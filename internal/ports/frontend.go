package ports

// Frontend defines the interface for a surface that drives the fraud check service
type Frontend interface {
	// Start starts serving; it must not block
	Start() error

	// Stop stops serving and releases resources
	Stop() error
}
