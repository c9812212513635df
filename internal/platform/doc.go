// Package platform contains OS integration: the default downloads directory,
// directory creation, and revealing or opening a finished file.
package platform
