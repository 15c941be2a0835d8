package config

import "fmt"

// IgnoreCaseVar is the environment variable whose presence switches
// matching to case-insensitive. The value is not inspected; an empty
// string counts as set.
const IgnoreCaseVar = "IGNORE_CASE"

// Request describes one resolved search invocation. It is built once by
// Resolve and never mutated afterwards.
type Request struct {
	Pattern       string
	Path          string
	CaseSensitive bool
}

// UsageError reports an invocation with the wrong argument shape. Its
// message is the full usage text, ready for the diagnostic stream.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return e.Usage
}

// Resolve turns raw argument tokens and environment state into a Request.
// args[0] names the invoking program; exactly a pattern and a file path
// must follow, in that order. lookupEnv is consulted for IgnoreCaseVar
// only. Existence of the file path is not checked here; that belongs to
// the search engine.
func Resolve(args []string, lookupEnv func(string) (string, bool)) (Request, error) {
	program := "sift"
	if len(args) > 0 && args[0] != "" {
		program = args[0]
	}

	usage := fmt.Sprintf(
		"Usage: %s <pattern> <path>\nSet environment variable %s to search case-insensitively",
		program, IgnoreCaseVar)

	if len(args) != 3 || args[1] == "" || args[2] == "" {
		return Request{}, &UsageError{Usage: usage}
	}

	_, ignoreCase := lookupEnv(IgnoreCaseVar)

	return Request{
		Pattern:       args[1],
		Path:          args[2],
		CaseSensitive: !ignoreCase,
	}, nil
}
