// Package binding implements the per-module binding container.
//
// A Container stores constructor bindings (transient, singleton, lazy
// singleton, instance) keyed by type, resolves lookups with fallback to the
// containers of imported modules, and carries a unique identity tag that
// changes every time its owning module is reset.
//
// # Usage
//
//	c := binding.New("user")
//	binding.Bind[UserRepo](c, binding.LazySingleton, func() (UserRepo, error) {
//	    return newSQLUserRepo()
//	})
//	c.Commit()
//	repo, err := binding.Resolve[UserRepo](c)
package binding
