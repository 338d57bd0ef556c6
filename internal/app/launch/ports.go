package launch

// Lookup locates an executable on the ambient search path.
type Lookup interface {
	LookPath(name string) (string, error)
}
