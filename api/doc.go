// Package api defines the data model for the apiwire resolver:
// opaque capability references, factories that provide them, and the
// immutable registry the resolver reads from.
//
// References compare by identity, not by name. Two refs created with
// the same display name are distinct capabilities:
//
//	storage := api.NewRef("storage")
//	other := api.NewRef("storage")
//	// storage != other
//
// A factory declares the ref it implements, an ordered set of named
// dependency slots, and a construct function that receives concrete
// values for those slots.
package api
