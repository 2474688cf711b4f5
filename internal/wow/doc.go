// Package wow defines the domain model shared by the scanner, the backup
// engine, and the CLI: World of Warcraft installations and client flavors,
// backup profiles, and the ordered addon-to-files mapping the engine
// consumes.
package wow
