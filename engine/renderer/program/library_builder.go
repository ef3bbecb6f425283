package program

// LibraryBuilderOption is a functional option used to configure a Library during construction.
type LibraryBuilderOption func(*library)

// WithWorkers sets the number of workers used by Precompile.
//
// Parameters:
//   - n: the worker count, values below 1 are raised to 1
//
// Returns:
//   - LibraryBuilderOption: a function that sets the worker count for this library
func WithWorkers(n int) LibraryBuilderOption {
	return func(l *library) {
		l.workers = n
	}
}

// WithGenerator replaces the function that produces definitions on a cache miss.
//
// Parameters:
//   - g: the generator
//
// Returns:
//   - LibraryBuilderOption: a function that sets the generator for this library
func WithGenerator(g Generator) LibraryBuilderOption {
	return func(l *library) {
		if g != nil {
			l.generate = g
		}
	}
}
