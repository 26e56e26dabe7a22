package common

// File permission constants used across the application
const (
	// FilePermissionSecure is used for sensitive files (config, stored credentials)
	FilePermissionSecure = 0600

	// DirPermissionSecure is used for directories containing sensitive files
	DirPermissionSecure = 0700

	// DirPermissionNormal is used for normal directories
	DirPermissionNormal = 0755
)
