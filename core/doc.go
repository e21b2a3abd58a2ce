// Package core provides the small set of domain types shared by agents and
// model adapters: role-tagged Content made of ordered Parts.
//
// The package keeps provider concerns out of scope. Model adapters translate
// Content into their vendor request shapes and back, so agents never touch an
// SDK type directly.
package core
