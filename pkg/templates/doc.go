// Package templates implements the mkt template registry.
//
// A registry is a directory holding one <name>.toml record per template plus
// the stored artifact it points to:
//
//	templates/
//	├── api.toml        kind = "txml", source = "api.txml"
//	├── api.txml
//	├── site.toml       kind = "dir", source = "site.dir"
//	├── site.dir/
//	└── cli.toml        kind = "git", source = "https://example.com/cli.git"
//
// TXML templates are parsed and instantiated by the txml engine, directory
// templates are copied as they are and git templates are cloned.
package templates
