// Package exitcode maps failures to stable CLI exit codes.
package exitcode

import (
	"errors"
	"os"

	"github.com/medport/medport/internal/api"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args)
	UsageError = 2

	// AuthError indicates an authentication or authorization failure
	AuthError = 3

	// NotFound indicates the requested resource does not exist
	NotFound = 4

	// NetworkError indicates a transport failure or timeout
	NetworkError = 5

	// ServerError indicates the backend reported a 5xx failure
	ServerError = 6

	// Interrupted indicates the user cancelled with SIGINT
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code.
// API failures carry a machine-readable kind, so no message sniffing is
// needed.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case api.KindUnauthorized, api.KindForbidden:
			return AuthError
		case api.KindNotFound:
			return NotFound
		case api.KindTimeout, api.KindTransport:
			return NetworkError
		case api.KindServerError:
			return ServerError
		}
	}

	return GeneralError
}

// Description returns a human-readable description of an exit code
func Description(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case AuthError:
		return "Authentication error"
	case NotFound:
		return "Resource not found"
	case NetworkError:
		return "Network error"
	case ServerError:
		return "Backend server error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
