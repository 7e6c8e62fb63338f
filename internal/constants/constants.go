package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the fixed per-call timeout for API requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ExtendedHTTPTimeout is used for artifact downloads.
	ExtendedHTTPTimeout = 120 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits for the transport.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Concurrency limits.
const (
	// DefaultConcurrencyLimit caps concurrent sub-fetches sharing one
	// session token.
	DefaultConcurrencyLimit = 3
)

// File and directory permissions.
const (
	// DownloadDirPerm is the permission for created download directories.
	DownloadDirPerm = 0750
)
