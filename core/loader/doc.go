// Package loader mounts optional features onto the fiber router.
//
// A feature reports its name and whether configuration enables it, and registers its
// routes in Load:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(router fiber.Router) error
//	}
//
// Manager keeps features in registration order. LoadAll skips disabled ones and stops at
// the first Load error, wrapped with the feature name.
package loader
