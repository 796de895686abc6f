// ABOUTME: Build and product metadata
// ABOUTME: Constants shown in the startup banner and TUI header
package version

const (
	Version      = "0.1.0"
	Product      = "Hushwave"
	Manufacturer = "Hushwave Project"
)
