// Package lifecycle holds process-wide lifecycle settings shared by infra and delivery.
package lifecycle

import "time"

// DefaultTimeout bounds start-up checks and graceful shutdown.
const DefaultTimeout = 10 * time.Second
