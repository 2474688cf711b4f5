// Package paths resolves the file system locations used by wowvault.
//
// Configuration and data directories follow the XDG Base Directory
// Specification via github.com/adrg/xdg. Default World of Warcraft scan
// locations cover the common install paths per platform, including
// Wine/Proton prefixes on Linux.
package paths
