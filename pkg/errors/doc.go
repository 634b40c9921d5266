// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeStepFailed,
//	    "nvidia stack installation failed",
//	    cmdErr,
//	    map[string]interface{}{
//	        "step":    "nvidia",
//	        "command": "apt-get install cuda-toolkit-12-4",
//	    },
//	)
package errors
